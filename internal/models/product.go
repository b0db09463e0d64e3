package models

import "github.com/google/uuid"

type Product struct {
	BaseModel
	StoreID     uuid.UUID `gorm:"type:uuid;index" json:"store_id"`
	Store       *Store    `json:"store,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
}
