package models

import "github.com/google/uuid"

// ChatMessage belongs to the conversation between one buyer and one store.
type ChatMessage struct {
	BaseModel
	StoreID  uuid.UUID `gorm:"type:uuid;index" json:"store_id"`
	BuyerID  uuid.UUID `gorm:"type:uuid;index" json:"buyer_id"`
	SenderID uuid.UUID `gorm:"type:uuid" json:"sender_id"`
	Body     string    `json:"body"`
	Read     bool      `json:"read"`
}
