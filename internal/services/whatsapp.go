package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/example/feria/internal/models"
)

// ErrNoPhone is returned when neither the order nor the buyer profile
// carries a contact phone.
var ErrNoPhone = errors.New("no contact phone available")

// WhatsAppService builds wa.me deep links sellers use to message buyers.
type WhatsAppService struct {
	countryPrefix string
}

// NewWhatsAppService creates a WhatsAppService. countryPrefix is prepended
// to local (9-digit) numbers, "51" for Peru.
func NewWhatsAppService(countryPrefix string) *WhatsAppService {
	return &WhatsAppService{countryPrefix: countryPrefix}
}

// NormalizePhone strips non-digit characters and prefixes a local 9-digit
// number with the country code. Already-prefixed numbers pass unchanged.
// This is a local-market heuristic, not E.164 validation.
func (s *WhatsAppService) NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	phone := digits.String()
	if len(phone) == 9 && !strings.HasPrefix(phone, s.countryPrefix) {
		phone = s.countryPrefix + phone
	}
	return phone
}

// OrderLink builds the wa.me deep link for an order. The order's delivery
// phone takes precedence over the profile phone. Returns ErrNoPhone when
// neither resolves to digits; a link is never built with an empty number.
func (s *WhatsAppService) OrderLink(order models.Order, profilePhone string) (string, error) {
	phone := s.NormalizePhone(order.DeliveryPhone)
	if phone == "" {
		phone = s.NormalizePhone(profilePhone)
	}
	if phone == "" {
		return "", ErrNoPhone
	}

	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(s.orderMessage(order)), nil
}

// orderMessage renders the templated multi-line order summary.
func (s *WhatsAppService) orderMessage(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola! Le escribimos por su pedido %s.\n\n", order.OrderNumber)

	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s\n   %d x %s = %s\n",
			i+1,
			item.ProductName,
			item.Quantity,
			FormatPrice(item.UnitPrice, order.Currency),
			FormatPrice(item.TotalPrice, order.Currency),
		)
	}

	fmt.Fprintf(&b, "\nEnvío: %s\nTotal: %s\nEstado: %s",
		FormatPrice(order.ShippingCost, order.Currency),
		FormatPrice(order.Total, order.Currency),
		order.Status.Label(),
	)

	return b.String()
}

// FormatPrice formats an amount with its currency symbol.
func FormatPrice(amount float64, currency string) string {
	symbol := currency
	switch currency {
	case "PEN", "":
		symbol = "S/"
	case "USD":
		symbol = "$"
	}
	return fmt.Sprintf("%s %.2f", symbol, amount)
}
