package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/feria/internal/models"
)

func TestNormalizePhone(t *testing.T) {
	svc := NewWhatsAppService("51")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local nine digits", "987654321", "51987654321"},
		{"already prefixed", "51987654321", "51987654321"},
		{"punctuation stripped", "987-654-321", "51987654321"},
		{"spaces and plus", "+51 987 654 321", "51987654321"},
		{"nine digits starting with prefix", "519876543", "519876543"},
		{"empty", "", ""},
		{"letters only", "no-phone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.NormalizePhone(tt.in))
		})
	}
}

func TestOrderLinkPrefersDeliveryPhone(t *testing.T) {
	svc := NewWhatsAppService("51")

	order := models.Order{
		OrderNumber:   "ORD-20250101120000-ABCD",
		Status:        models.StatusPending,
		DeliveryPhone: "987654321",
		Total:         80,
	}

	link, err := svc.OrderLink(order, "911111111")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/51987654321?text="))
}

func TestOrderLinkFallsBackToProfilePhone(t *testing.T) {
	svc := NewWhatsAppService("51")

	order := models.Order{OrderNumber: "ORD-1", Status: models.StatusPending}

	link, err := svc.OrderLink(order, "911111111")
	require.NoError(t, err)
	assert.Contains(t, link, "wa.me/51911111111")
}

func TestOrderLinkNoPhone(t *testing.T) {
	svc := NewWhatsAppService("51")

	_, err := svc.OrderLink(models.Order{OrderNumber: "ORD-1"}, "")
	assert.ErrorIs(t, err, ErrNoPhone)
}

func TestOrderLinkMessageContents(t *testing.T) {
	svc := NewWhatsAppService("51")

	order := models.Order{
		OrderNumber:   "ORD-20250101120000-ABCD",
		Status:        models.StatusConfirmed,
		DeliveryPhone: "987654321",
		Currency:      "PEN",
		ShippingCost:  10,
		Total:         80,
		Items: []models.OrderItem{
			{ProductName: "Mermelada de fresa", Quantity: 2, UnitPrice: 35, TotalPrice: 70},
		},
	}

	link, err := svc.OrderLink(order, "")
	require.NoError(t, err)

	parsed, err := url.Parse(link)
	require.NoError(t, err)

	text := parsed.Query().Get("text")
	assert.Contains(t, text, "ORD-20250101120000-ABCD")
	assert.Contains(t, text, "Mermelada de fresa")
	assert.Contains(t, text, "2 x S/ 35.00")
	assert.Contains(t, text, "Total: S/ 80.00")
	assert.Contains(t, text, "Confirmado")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "S/ 80.00", FormatPrice(80, "PEN"))
	assert.Equal(t, "S/ 0.30", FormatPrice(0.3, ""))
	assert.Equal(t, "$ 12.50", FormatPrice(12.5, "USD"))
	assert.Equal(t, "EUR 9.99", FormatPrice(9.99, "EUR"))
}
