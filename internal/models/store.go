package models

import "github.com/google/uuid"

type Store struct {
	BaseModel
	SellerID    uuid.UUID `gorm:"type:uuid;index" json:"seller_id"`
	Name        string    `json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	IsActive    bool      `json:"is_active"`
	Products    []Product `json:"products,omitempty"`
}
