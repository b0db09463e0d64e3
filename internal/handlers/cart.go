package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/models"
	"github.com/example/feria/internal/services"
)

// CartHandler manages the buyer's cart.
type CartHandler struct {
	db          *gorm.DB
	shippingFee float64
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB, shippingFee float64) *CartHandler {
	return &CartHandler{db: db, shippingFee: shippingFee}
}

// ListCart returns the buyer's cart items.
func (h *CartHandler) ListCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.CartItem
	if err := h.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// CartSummary returns the cart grouped by store with per-group totals.
func (h *CartHandler) CartSummary(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.CartItem
	if err := h.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return err
	}

	groups := services.GroupByStore(items, h.shippingFee)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"groups":      groups,
			"store_count": len(groups),
			"grand_total": services.GrandTotal(groups),
		},
	})
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddToCart adds a product to the cart or bumps the quantity of an
// existing line. Quantity never exceeds available stock.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var item models.CartItem
	err = h.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if req.Quantity > product.Stock {
			return fiber.NewError(fiber.StatusConflict, "quantity exceeds available stock")
		}
		item = models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			StoreID:   product.StoreID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		}
		if err := h.db.Create(&item).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		newQuantity := item.Quantity + req.Quantity
		if newQuantity > product.Stock {
			return fiber.NewError(fiber.StatusConflict, "quantity exceeds available stock")
		}
		if err := h.db.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return err
		}
		item.Quantity = newQuantity
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a cart line's quantity.
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be at least 1")
	}

	var item models.CartItem
	if err := h.db.First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
		return err
	}
	if req.Quantity > product.Stock {
		return fiber.NewError(fiber.StatusConflict, "quantity exceeds available stock")
	}

	if err := h.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return err
	}
	item.Quantity = req.Quantity

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// RemoveCartItem deletes one cart line.
func (h *CartHandler) RemoveCartItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "item removed"})
}

// ClearCart removes every cart line for the buyer.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}
