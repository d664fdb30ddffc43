package models

import (
	"time"
)

// Booking links one user to one slot. The unique index on SlotID is the
// arbiter of the one-booking-per-slot invariant: concurrent inserts for
// the same slot are serialized by the database, and every loser gets a
// duplicate-key error. Bookings are never updated or deleted.
type Booking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SlotID    uint      `json:"slotId" gorm:"uniqueIndex"`
	Slot      *Slot     `json:"slot,omitempty" gorm:"foreignKey:SlotID"`
	CreatedAt time.Time `json:"createdAt"`
}
