package models

import (
	"gorm.io/gorm"
)

const (
	HistoryCreated = "created"
	HistoryUpdated = "updated"
	HistoryDeleted = "deleted"
)

type BookingHistory struct {
	gorm.Model
	BookingID     uint   `json:"booking_id" gorm:"index"`
	Reference     string `json:"reference"`
	Action        string `json:"action"`
	RoomID        uint   `json:"room_id"`
	GuestID       uint   `json:"guest_id"`
	BookingFields `gorm:"embedded"`
}
