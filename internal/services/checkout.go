package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/feria/internal/models"
	"github.com/example/feria/internal/utils"
)

var (
	// ErrEmptyCart is returned when a checkout is attempted with no cart items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is returned when a cart line exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrMissingAddress is returned when no delivery address can be resolved.
	ErrMissingAddress = errors.New("delivery address is required")
)

// CheckoutInput carries the delivery form data supplied at checkout.
type CheckoutInput struct {
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	DeliveryNotes string `json:"delivery_notes"`
	CustomerNotes string `json:"customer_notes"`
}

// CheckoutService turns a buyer's cart into one order per store.
type CheckoutService struct {
	db          *gorm.DB
	realtime    *RealtimeService
	shippingFee float64
	currency    string
}

// NewCheckoutService constructs CheckoutService.
func NewCheckoutService(db *gorm.DB, realtime *RealtimeService, shippingFee float64, currency string) *CheckoutService {
	return &CheckoutService{db: db, realtime: realtime, shippingFee: shippingFee, currency: currency}
}

// Checkout places one order per store represented in the buyer's cart.
// The profile write, every order with its items, the stock decrements and
// the cart clear all run in a single transaction: a failure on any store
// group rolls back every group.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) ([]models.Order, error) {
	var orders []models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at asc").Find(&items).Error; err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		profile, err := s.resolveProfile(tx, userID, input)
		if err != nil {
			return err
		}

		address := firstNonEmpty(input.Address, profile.Address)
		if address == "" {
			return ErrMissingAddress
		}
		phone := firstNonEmpty(input.Phone, profile.Phone)

		for _, group := range GroupByStore(items, s.shippingFee) {
			order, err := s.createStoreOrder(tx, userID, group, address, phone, input)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		return s.notifySellers(tx, orders)
	})
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		s.realtime.PublishOrderEvent(ctx, NewOrderEvent(EventOrderInserted, order))
	}

	return orders, nil
}

// resolveProfile looks up the buyer's profile, creating it lazily on first
// checkout. Supplied delivery data overwrites stored fields (last write
// wins); when nothing changed no write is issued.
func (s *CheckoutService) resolveProfile(tx *gorm.DB, userID uuid.UUID, input CheckoutInput) (*models.BuyerProfile, error) {
	var profile models.BuyerProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}

		profile = models.BuyerProfile{
			UserID:  userID,
			Name:    user.DisplayName,
			Email:   user.Email,
			Phone:   strings.TrimSpace(input.Phone),
			Address: strings.TrimSpace(input.Address),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("create buyer profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load buyer profile: %w", err)
	}

	updates := profileUpdates(&profile, input.Address, input.Phone)
	if len(updates) > 0 {
		if err := tx.Model(&profile).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update buyer profile: %w", err)
		}
	}

	return &profile, nil
}

// profileUpdates returns the column updates implied by new delivery data.
// Empty inputs never clear stored values; identical inputs produce no
// updates, keeping repeated resolution write-free.
func profileUpdates(profile *models.BuyerProfile, address, phone string) map[string]interface{} {
	updates := map[string]interface{}{}

	if v := strings.TrimSpace(address); v != "" && v != profile.Address {
		updates["address"] = v
		profile.Address = v
	}
	if v := strings.TrimSpace(phone); v != "" && v != profile.Phone {
		updates["phone"] = v
		profile.Phone = v
	}

	return updates
}

func (s *CheckoutService) createStoreOrder(tx *gorm.DB, userID uuid.UUID, group StoreGroup, address, phone string, input CheckoutInput) (*models.Order, error) {
	order := models.Order{
		BuyerID:         userID,
		StoreID:         group.StoreID,
		Status:          models.StatusPending,
		PlacedAt:        time.Now(),
		Subtotal:        group.Subtotal,
		ShippingCost:    group.Shipping,
		Total:           group.Total,
		Currency:        s.currency,
		DeliveryAddress: address,
		DeliveryPhone:   phone,
		DeliveryNotes:   input.DeliveryNotes,
		CustomerNotes:   input.CustomerNotes,
	}

	for _, item := range group.Items {
		productID := item.ProductID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   &productID,
			ProductName: productName(tx, item.ProductID),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  round2(item.UnitPrice * float64(item.Quantity)),
		})

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if res.Error != nil {
			return nil, fmt.Errorf("reserve stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	// The unique index on order_number makes collisions fail instead of
	// silently sharing a number; one retry covers same-second generation.
	// Each attempt runs in its own savepoint: a duplicate-key abort must
	// not poison the surrounding checkout transaction, or the retry would
	// fail with "current transaction is aborted" instead of a clean insert.
	err := createOrderWithRetry(&order, func(o *models.Order) error {
		return tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(o).Error
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &order, nil
}

// createOrderWithRetry assigns a fresh order number and creates the row,
// retrying once with a new number on a duplicate-key collision.
func createOrderWithRetry(order *models.Order, create func(*models.Order) error) error {
	order.OrderNumber = utils.GenerateOrderNumber()
	err := create(order)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		order.OrderNumber = utils.GenerateOrderNumber()
		err = create(order)
	}
	return err
}

func (s *CheckoutService) notifySellers(tx *gorm.DB, orders []models.Order) error {
	for i := range orders {
		order := &orders[i]

		var store models.Store
		if err := tx.First(&store, "id = ?", order.StoreID).Error; err != nil {
			return fmt.Errorf("load store: %w", err)
		}

		notification := models.Notification{
			UserID:  store.SellerID,
			Type:    models.NotificationOrderPlaced,
			Title:   "Nuevo pedido",
			Body:    fmt.Sprintf("Pedido %s por %s", order.OrderNumber, FormatPrice(order.Total, order.Currency)),
			OrderID: &order.ID,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
	}
	return nil
}

func productName(tx *gorm.DB, productID uuid.UUID) string {
	var product models.Product
	if err := tx.Select("name").First(&product, "id = ?", productID).Error; err != nil {
		log.Printf("[Checkout] product %s lookup failed: %v", productID, err)
		return ""
	}
	return product.Name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
