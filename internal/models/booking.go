package models

import "time"

type BookingFields struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PartySize int       `json:"party_size"`
	Comment   string    `json:"comment"`
}

// Booking rows are hard-deleted; BookingHistory keeps the audit trail.
type Booking struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Reference     string    `json:"reference" gorm:"uniqueIndex;size:36"`
	RoomID        uint      `json:"room_id" gorm:"index"`
	Room          *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	GuestID       uint      `json:"guest_id" gorm:"index"`
	Guest         *Guest    `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	BookingFields `gorm:"embedded"`
}
