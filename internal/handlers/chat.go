package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/models"
	"github.com/example/feria/internal/utils"
)

// ChatHandler manages buyer-seller messaging.
type ChatHandler struct {
	db *gorm.DB
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

// ListMessages returns the buyer's conversation with a store.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	buyerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	storeID, err := uuid.Parse(c.Params("storeId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid store id")
	}

	pg := utils.ParsePagination(c)
	var messages []models.ChatMessage
	if err := h.db.Where("store_id = ? AND buyer_id = ?", storeID, buyerID).
		Order("created_at asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&messages).Error; err != nil {
		return err
	}

	// Messages from the store are read once the buyer opens the thread.
	if err := h.db.Model(&models.ChatMessage{}).
		Where("store_id = ? AND buyer_id = ? AND sender_id <> ? AND read = ?", storeID, buyerID, buyerID, false).
		Update("read", true).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": messages})
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// SendMessage posts a buyer message to a store thread.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	buyerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	storeID, err := uuid.Parse(c.Params("storeId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid store id")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Body) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message body is required")
	}

	var store models.Store
	if err := h.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}
		return err
	}

	message := models.ChatMessage{
		StoreID:  storeID,
		BuyerID:  buyerID,
		SenderID: buyerID,
		Body:     strings.TrimSpace(req.Body),
	}
	if err := h.db.Create(&message).Error; err != nil {
		return err
	}

	notification := models.Notification{
		UserID: store.SellerID,
		Type:   models.NotificationChatMessage,
		Title:  "Nuevo mensaje",
		Body:   truncate(message.Body, 120),
	}
	if err := h.db.Create(&notification).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": message})
}

// ListThreads returns the distinct buyer threads for the seller's stores.
func (h *ChatHandler) ListThreads(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var threads []struct {
		StoreID uuid.UUID `json:"store_id"`
		BuyerID uuid.UUID `json:"buyer_id"`
		Unread  int64     `json:"unread"`
	}
	err := h.db.Model(&models.ChatMessage{}).
		Select("chat_messages.store_id, chat_messages.buyer_id, count(*) filter (where read = false and sender_id = chat_messages.buyer_id) as unread").
		Joins("JOIN stores ON stores.id = chat_messages.store_id").
		Where("stores.seller_id = ?", sellerID).
		Group("chat_messages.store_id, chat_messages.buyer_id").
		Scan(&threads).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": threads})
}

// ListThreadMessages returns one buyer thread for a store the seller owns.
func (h *ChatHandler) ListThreadMessages(c *fiber.Ctx) error {
	storeID, buyerID, err := h.sellerThread(c)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	var messages []models.ChatMessage
	if err := h.db.Where("store_id = ? AND buyer_id = ?", storeID, buyerID).
		Order("created_at asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&messages).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.ChatMessage{}).
		Where("store_id = ? AND buyer_id = ? AND sender_id = ? AND read = ?", storeID, buyerID, buyerID, false).
		Update("read", true).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": messages})
}

// ReplyToThread posts a seller reply into a buyer thread.
func (h *ChatHandler) ReplyToThread(c *fiber.Ctx) error {
	sellerID, _ := middleware.GetCurrentUserID(c)

	storeID, buyerID, err := h.sellerThread(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Body) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message body is required")
	}

	message := models.ChatMessage{
		StoreID:  storeID,
		BuyerID:  buyerID,
		SenderID: sellerID,
		Body:     strings.TrimSpace(req.Body),
	}
	if err := h.db.Create(&message).Error; err != nil {
		return err
	}

	notification := models.Notification{
		UserID: buyerID,
		Type:   models.NotificationChatMessage,
		Title:  "Nuevo mensaje",
		Body:   truncate(message.Body, 120),
	}
	if err := h.db.Create(&notification).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": message})
}

func (h *ChatHandler) sellerThread(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	storeID, err := uuid.Parse(c.Params("storeId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid store id")
	}
	buyerID, err := uuid.Parse(c.Params("buyerId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid buyer id")
	}

	var store models.Store
	if err := h.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusNotFound, "store not found")
		}
		return uuid.Nil, uuid.Nil, err
	}
	if store.SellerID != sellerID {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusForbidden, "not your store")
	}

	return storeID, buyerID, nil
}

// truncate shortens s to max runes. Cutting on byte offsets would split
// multibyte characters (á, ñ) and store invalid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
