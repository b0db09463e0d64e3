package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"github.com/example/feria/internal/middleware"
	"github.com/example/feria/internal/models"
	"github.com/example/feria/internal/services"
)

// EventsHandler streams realtime order events to clients over SSE.
type EventsHandler struct {
	db       *gorm.DB
	realtime *services.RealtimeService
}

// NewEventsHandler constructs EventsHandler.
func NewEventsHandler(db *gorm.DB, realtime *services.RealtimeService) *EventsHandler {
	return &EventsHandler{db: db, realtime: realtime}
}

// BuyerEvents streams the authenticated buyer's order events.
func (h *EventsHandler) BuyerEvents(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return h.stream(c, services.BuyerChannel(userID))
}

// StoreEvents streams order events for a store the seller owns.
func (h *EventsHandler) StoreEvents(c *fiber.Ctx) error {
	sellerID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	storeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var store models.Store
	if err := h.db.First(&store, "id = ? AND seller_id = ?", storeID, sellerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}
		return err
	}

	return h.stream(c, services.StoreChannel(storeID))
}

func (h *EventsHandler) stream(c *fiber.Ctx, channel string) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	realtime := h.realtime
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan services.OrderEvent, 16)
		go realtime.Subscribe(ctx, channel, func(event services.OrderEvent) {
			select {
			case events <- event:
			default:
				// Slow consumer; it will refetch on the next page load.
			}
		})

		keepalive := time.NewTicker(25 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case event := <-events:
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
