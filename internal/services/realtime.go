package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/example/feria/internal/models"
)

// OrderEventType classifies realtime order events.
type OrderEventType string

const (
	EventOrderInserted OrderEventType = "insert"
	EventOrderUpdated  OrderEventType = "update"
	EventOrderDeleted  OrderEventType = "delete"
)

// OrderEvent is the payload published on order channels. Both the buyer's
// and the store's channels receive every event for their orders.
type OrderEvent struct {
	Type        OrderEventType     `json:"type"`
	OrderID     uuid.UUID          `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	StoreID     uuid.UUID          `json:"store_id"`
	BuyerID     uuid.UUID          `json:"buyer_id"`
	Status      models.OrderStatus `json:"status"`
	StatusLabel string             `json:"status_label"`
	Total       float64            `json:"total"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// NewOrderEvent builds an OrderEvent from an order row.
func NewOrderEvent(eventType OrderEventType, order models.Order) OrderEvent {
	return OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		StoreID:     order.StoreID,
		BuyerID:     order.BuyerID,
		Status:      order.Status,
		StatusLabel: order.Status.Label(),
		Total:       order.Total,
		OccurredAt:  time.Now(),
	}
}

// StoreChannel names the pub/sub channel carrying a store's order events.
func StoreChannel(storeID uuid.UUID) string {
	return "orders:store:" + storeID.String()
}

// BuyerChannel names the pub/sub channel carrying a buyer's order events.
func BuyerChannel(buyerID uuid.UUID) string {
	return "orders:buyer:" + buyerID.String()
}

// RealtimeService fans order events out over redis pub/sub.
type RealtimeService struct {
	client *redis.Client
}

// NewRealtimeService constructs RealtimeService.
func NewRealtimeService(client *redis.Client) *RealtimeService {
	return &RealtimeService{client: client}
}

// PublishOrderEvent publishes the event on both the store's and the
// buyer's channels. Publish failures are logged, not propagated: the rows
// are already committed and subscribers refetch on reconnect.
func (s *RealtimeService) PublishOrderEvent(ctx context.Context, event OrderEvent) {
	if s == nil || s.client == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Realtime] marshal event: %v", err)
		return
	}

	for _, channel := range []string{StoreChannel(event.StoreID), BuyerChannel(event.BuyerID)} {
		if err := s.client.Publish(ctx, channel, payload).Err(); err != nil {
			log.Printf("[Realtime] publish to %s failed: %v", channel, err)
		}
	}
}

// Subscribe consumes order events from a channel until ctx is cancelled,
// reconnecting with capped exponential backoff after errors. The delay
// resets once a message is received.
func (s *RealtimeService) Subscribe(ctx context.Context, channel string, handler func(OrderEvent)) {
	var delay time.Duration

	for ctx.Err() == nil {
		pubsub := s.client.Subscribe(ctx, channel)

		for {
			msg, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					pubsub.Close()
					return
				}
				log.Printf("[Realtime] receive on %s failed: %v", channel, err)
				break
			}

			delay = 0
			var event OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[Realtime] malformed event on %s: %v", channel, err)
				continue
			}
			handler(event)
		}

		pubsub.Close()

		delay = nextBackoff(delay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// nextBackoff doubles the reconnect delay, starting at one second and
// capped at thirty.
func nextBackoff(current time.Duration) time.Duration {
	const (
		initial = time.Second
		max     = 30 * time.Second
	)

	if current < initial {
		return initial
	}
	if current >= max/2 {
		return max
	}
	return current * 2
}
