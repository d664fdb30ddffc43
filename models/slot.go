package models

import (
	"time"
)

// Slot is a bookable time interval. Slots are created only by the
// seeding process and never updated or deleted through the API.
type Slot struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	StartAt time.Time `json:"startAt" gorm:"index"`
	EndAt   time.Time `json:"endAt"`
}
