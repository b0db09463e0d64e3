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

// OrderHandler manages the buyer-facing order endpoints.
type OrderHandler struct {
	db       *gorm.DB
	checkout *services.CheckoutService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, checkout *services.CheckoutService) *OrderHandler {
	return &OrderHandler{db: db, checkout: checkout}
}

// Checkout places one order per store represented in the buyer's cart.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orders, err := h.checkout.Checkout(c.Context(), userID, input)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	case errors.Is(err, services.ErrMissingAddress):
		return fiber.NewError(fiber.StatusBadRequest, "delivery address is required")
	case errors.Is(err, services.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, "a product in your cart is out of stock")
	case err != nil:
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d order(s) created", len(orders)),
		"data":    orders,
	})
}

// ListOrders returns orders for the authenticated buyer.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("buyer_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("Store").
		Order("placed_at desc").
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

// GetOrder returns a single order for the authenticated buyer.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").Preload("Store").
		First(&order, "id = ? AND buyer_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
		"meta": fiber.Map{
			"status_label": order.Status.Label(),
		},
	})
}
