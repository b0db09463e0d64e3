package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a seller-scheduled event (deliveries, restocks).
type CalendarEvent struct {
	BaseModel
	StoreID  uuid.UUID `gorm:"type:uuid;index" json:"store_id"`
	Title    string    `json:"title"`
	Notes    string    `json:"notes"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}
