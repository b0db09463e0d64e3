package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/models"
)

// CalendarHandler manages seller calendar events.
type CalendarHandler struct {
	db *gorm.DB
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(db *gorm.DB) *CalendarHandler {
	return &CalendarHandler{db: db}
}

// ListEvents returns events across the seller's stores, optionally
// bounded by from/to timestamps.
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	query := h.db.Model(&models.CalendarEvent{}).
		Joins("JOIN stores ON stores.id = calendar_events.store_id").
		Where("stores.seller_id = ?", sellerID)

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			query = query.Where("starts_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			query = query.Where("starts_at <= ?", t)
		}
	}

	var events []models.CalendarEvent
	if err := query.Order("starts_at asc").Find(&events).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": events})
}

type calendarEventRequest struct {
	StoreID  string     `json:"store_id"`
	Title    string     `json:"title"`
	Notes    string     `json:"notes"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// CreateEvent schedules an event on one of the seller's stores.
func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req calendarEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.StoreID == "" || req.StartsAt == nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid store_id")
	}

	var store models.Store
	if err := h.db.First(&store, "id = ? AND seller_id = ?", storeID, sellerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}
		return err
	}

	event := models.CalendarEvent{
		StoreID:  storeID,
		Title:    req.Title,
		Notes:    req.Notes,
		StartsAt: *req.StartsAt,
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}

	if err := h.db.Create(&event).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": event})
}

// UpdateEvent edits an event on one of the seller's stores.
func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	event, err := h.ownedEvent(c.Params("id"), sellerID)
	if err != nil {
		return err
	}

	var req calendarEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := h.db.Model(event).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": event})
}

// DeleteEvent removes an event from one of the seller's stores.
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	event, err := h.ownedEvent(c.Params("id"), sellerID)
	if err != nil {
		return err
	}

	if err := h.db.Delete(event).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "event deleted"})
}

func (h *CalendarHandler) ownedEvent(rawID string, sellerID uuid.UUID) (*models.CalendarEvent, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var event models.CalendarEvent
	if err := h.db.First(&event, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "event not found")
		}
		return nil, err
	}

	var store models.Store
	if err := h.db.First(&store, "id = ? AND seller_id = ?", event.StoreID, sellerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusForbidden, "not your store")
		}
		return nil, err
	}

	return &event, nil
}
