package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Address struct {
	Street string `json:"street"`
	Zip    string `json:"zip"`
	City   string `json:"city" gorm:"index"`
}

type Hotel struct {
	gorm.Model
	Name    string  `json:"name"`
	Stars   int     `json:"stars"`
	Address Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Rooms   []Room  `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}

type Room struct {
	gorm.Model
	HotelID     uint                        `json:"hotel_id" gorm:"uniqueIndex:idx_hotel_room_number"`
	Hotel       *Hotel                      `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Number      string                      `json:"number" gorm:"uniqueIndex:idx_hotel_room_number"`
	Type        string                      `json:"type"`
	Capacity    int                         `json:"capacity"`
	Price       float64                     `json:"price"`
	Description string                      `json:"description"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	// Available is false while the room is out of service.
	Available bool `json:"available" gorm:"default:true"`
}
