package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	BuyerID         uuid.UUID   `gorm:"type:uuid;index" json:"buyer_id"`
	Buyer           *User       `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	StoreID         uuid.UUID   `gorm:"type:uuid;index" json:"store_id"`
	Store           *Store      `json:"store,omitempty"`
	OrderNumber     string      `gorm:"uniqueIndex" json:"order_number"`
	Status          OrderStatus `json:"status"`
	PlacedAt        time.Time   `json:"placed_at"`
	Subtotal        float64     `json:"subtotal"`
	ShippingCost    float64     `json:"shipping_cost"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryPhone   string      `json:"delivery_phone"`
	DeliveryNotes   string      `json:"delivery_notes"`
	CustomerNotes   string      `json:"customer_notes"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	TotalPrice  float64    `json:"total_price"`
}
