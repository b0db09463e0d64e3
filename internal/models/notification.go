package models

import "github.com/google/uuid"

// Notification types.
const (
	NotificationOrderPlaced = "order_placed"
	NotificationOrderStatus = "order_status"
	NotificationChatMessage = "chat_message"
)

type Notification struct {
	BaseModel
	UserID  uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Type    string     `json:"type"`
	Title   string     `json:"title"`
	Body    string     `json:"body"`
	OrderID *uuid.UUID `gorm:"type:uuid" json:"order_id"`
	Read    bool       `json:"read"`
}
