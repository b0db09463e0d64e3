package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/feria/internal/models"
)

func TestNextBackoffSchedule(t *testing.T) {
	var delay time.Duration

	want := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}

	for i, expected := range want {
		delay = nextBackoff(delay)
		assert.Equal(t, expected, delay, "step %d", i)
	}
}

func TestChannelNames(t *testing.T) {
	storeID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	buyerID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	assert.Equal(t, "orders:store:11111111-2222-3333-4444-555555555555", StoreChannel(storeID))
	assert.Equal(t, "orders:buyer:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", BuyerChannel(buyerID))
}

func TestNewOrderEvent(t *testing.T) {
	order := models.Order{
		BuyerID:     uuid.New(),
		StoreID:     uuid.New(),
		OrderNumber: "ORD-20250101120000-ABCD",
		Status:      models.StatusShipped,
		Total:       80,
	}
	order.ID = uuid.New()

	event := NewOrderEvent(EventOrderUpdated, order)

	assert.Equal(t, EventOrderUpdated, event.Type)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, order.StoreID, event.StoreID)
	assert.Equal(t, order.BuyerID, event.BuyerID)
	assert.Equal(t, models.StatusShipped, event.Status)
	assert.Equal(t, "Enviado", event.StatusLabel)
	assert.Equal(t, 80.0, event.Total)
	assert.False(t, event.OccurredAt.IsZero())
}
