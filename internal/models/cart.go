package models

import "github.com/google/uuid"

// CartItem is a buyer's cart line. Unit price and store are denormalized
// at add time so the cart survives product edits until checkout.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	StoreID   uuid.UUID `gorm:"type:uuid;index" json:"store_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}
