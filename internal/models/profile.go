package models

import "github.com/google/uuid"

// BuyerProfile holds contact and delivery data for a buyer.
// Created lazily on first checkout; exactly one row per user.
type BuyerProfile struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
}

// SellerProfile holds seller-facing contact data.
type SellerProfile struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	BusinessName string    `json:"business_name"`
	ContactPhone string    `json:"contact_phone"`
	AvatarURL    string    `json:"avatar_url"`
}
