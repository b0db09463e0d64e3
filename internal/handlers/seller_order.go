package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/models"
	"github.com/example/feria/internal/services"
	"github.com/example/feria/internal/utils"
)

// SellerOrderHandler manages fulfillment endpoints for store operators.
type SellerOrderHandler struct {
	db       *gorm.DB
	realtime *services.RealtimeService
	whatsapp *services.WhatsAppService
}

// NewSellerOrderHandler constructs SellerOrderHandler.
func NewSellerOrderHandler(db *gorm.DB, realtime *services.RealtimeService, whatsapp *services.WhatsAppService) *SellerOrderHandler {
	return &SellerOrderHandler{db: db, realtime: realtime, whatsapp: whatsapp}
}

// ListOrders returns orders across the seller's stores.
func (h *SellerOrderHandler) ListOrders(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).
		Joins("JOIN stores ON stores.id = orders.store_id").
		Where("stores.seller_id = ?", sellerID)

	if status := c.Query("status"); status != "" {
		query = query.Where("orders.status = ?", status)
	}
	if v := c.Query("store_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			query = query.Where("orders.store_id = ?", id)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("Buyer").
		Order("orders.placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns one order from the seller's stores, with the legal
// next statuses for the fulfillment UI.
func (h *SellerOrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.ownedOrder(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
		"meta": fiber.Map{
			"status_label":  order.Status.Label(),
			"next_statuses": order.Status.NextStatuses(),
		},
	})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus applies a fulfillment transition. Illegal moves are
// rejected; applied moves notify the buyer and publish a realtime event.
func (h *SellerOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	order, err := h.ownedOrder(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	next, err := order.Status.Transition(req.Status)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := applyStatus(tx, order, next); err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  order.BuyerID,
			Type:    models.NotificationOrderStatus,
			Title:   "Pedido actualizado",
			Body:    fmt.Sprintf("Tu pedido %s ahora está: %s", order.OrderNumber, next.Label()),
			OrderID: &order.ID,
		}
		return tx.Create(&notification).Error
	})
	if errors.Is(err, errStatusConflict) {
		return fiber.NewError(fiber.StatusConflict, "order status changed, reload and retry")
	}
	if err != nil {
		return err
	}

	h.realtime.PublishOrderEvent(c.Context(), services.NewOrderEvent(services.EventOrderUpdated, *order))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
		"meta": fiber.Map{
			"status_label":  order.Status.Label(),
			"next_statuses": order.Status.NextStatuses(),
		},
	})
}

// DeleteOrder hard-deletes an order and its items. Sellers only; buyers
// can never delete orders.
func (h *SellerOrderHandler) DeleteOrder(c *fiber.Ctx) error {
	order, err := h.ownedOrder(c)
	if err != nil {
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
	if err != nil {
		return err
	}

	h.realtime.PublishOrderEvent(c.Context(), services.NewOrderEvent(services.EventOrderDeleted, *order))

	return c.JSON(fiber.Map{"success": true, "message": "order deleted"})
}

// WhatsAppLink returns the wa.me deep link the seller opens to message the
// buyer about this order.
func (h *SellerOrderHandler) WhatsAppLink(c *fiber.Ctx) error {
	order, err := h.ownedOrder(c)
	if err != nil {
		return err
	}

	var profilePhone string
	var profile models.BuyerProfile
	if err := h.db.Where("user_id = ?", order.BuyerID).First(&profile).Error; err == nil {
		profilePhone = profile.Phone
	}

	link, err := h.whatsapp.OrderLink(*order, profilePhone)
	if errors.Is(err, services.ErrNoPhone) {
		return fiber.NewError(fiber.StatusConflict, "buyer has no contact phone on file")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"link": link}})
}

// errStatusConflict signals that another session changed the order status
// between the seller's read and this update.
var errStatusConflict = errors.New("order status changed concurrently")

// applyStatus persists the transition only if the row still holds the
// status the seller acted on, so a stale read cannot overwrite a newer
// transition (e.g. a cancel landing after another session shipped).
func applyStatus(tx *gorm.DB, order *models.Order, next models.OrderStatus) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStatusConflict
	}
	order.Status = next
	return nil
}

// ownedOrder loads the order in :id and verifies the authenticated seller
// owns its store.
func (h *SellerOrderHandler) ownedOrder(c *fiber.Ctx) (*models.Order, error) {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return nil, err
	}

	var store models.Store
	if err := h.db.First(&store, "id = ?", order.StoreID).Error; err != nil {
		return nil, err
	}
	if store.SellerID != sellerID {
		return nil, fiber.NewError(fiber.StatusForbidden, "not your store's order")
	}

	return &order, nil
}
