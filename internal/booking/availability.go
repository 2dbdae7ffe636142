package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"gorm.io/gorm"
)

type StarMode int

const (
	AtLeast StarMode = iota
	AtMost
)

type StarFilter struct {
	Stars int
	Mode  StarMode
}

// Criteria describes an availability search. Zero values of HotelID, City,
// Stars, MinPrice and MaxPrice disable the corresponding filter.
type Criteria struct {
	HotelID  uint
	Stay     Stay
	Guests   int
	City     string
	Stars    *StarFilter
	MinPrice float64
	MaxPrice float64
}

func (c Criteria) validate() error {
	if err := c.Stay.Validate(); err != nil {
		return err
	}
	if c.Guests < 1 {
		return ErrInvalidPartySize
	}
	if c.MinPrice < 0 || c.MaxPrice < 0 || (c.MaxPrice > 0 && c.MinPrice > c.MaxPrice) {
		return ErrInvalidPriceRange
	}
	return nil
}

// Resolver answers which rooms and hotels are free for a stay. It never writes.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// bookedRooms selects the ids of rooms holding a booking that intersects the
// stay. Bookings ending on the first night or starting on the departure day
// do not count.
func bookedRooms(tx *gorm.DB, stay Stay, excludeBookingID uint) *gorm.DB {
	q := tx.Model(&models.Booking{}).
		Select("room_id").
		Where("start_date < ? AND end_date > ?", stay.End, stay.Start)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	return q
}

func (r *Resolver) FindRooms(ctx context.Context, c Criteria) ([]models.Room, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return findRooms(r.db.WithContext(ctx), c)
}

func findRooms(tx *gorm.DB, c Criteria) ([]models.Room, error) {
	q := tx.Model(&models.Room{}).
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id AND hotels.deleted_at IS NULL").
		Where("rooms.available = ?", true).
		Where("rooms.capacity >= ?", c.Guests).
		Where("rooms.id NOT IN (?)", bookedRooms(tx.Session(&gorm.Session{NewDB: true}), c.Stay, 0))

	if c.HotelID != 0 {
		q = q.Where("rooms.hotel_id = ?", c.HotelID)
	}
	if city := strings.TrimSpace(c.City); city != "" {
		// INSTR matches the text literally, so % and _ are not wildcards.
		q = q.Where("INSTR(LOWER(hotels.address_city), ?) > 0", strings.ToLower(city))
	}
	if c.MinPrice > 0 {
		q = q.Where("rooms.price >= ?", c.MinPrice)
	}
	if c.MaxPrice > 0 {
		q = q.Where("rooms.price <= ?", c.MaxPrice)
	}
	if c.Stars != nil {
		switch c.Stars.Mode {
		case AtMost:
			q = q.Where("hotels.stars <= ?", c.Stars.Stars)
		default:
			q = q.Where("hotels.stars >= ?", c.Stars.Stars)
		}
	}

	var rooms []models.Room
	err := q.Preload("Hotel").
		Order("rooms.hotel_id").
		Order("rooms.number").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("find available rooms: %w", err)
	}
	return rooms, nil
}

// FindHotels returns each hotel owning at least one matching room, in the
// order its first room was found.
func (r *Resolver) FindHotels(ctx context.Context, c Criteria) ([]models.Hotel, error) {
	rooms, err := r.FindRooms(ctx, c)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	hotels := []models.Hotel{}
	for _, room := range rooms {
		if seen[room.HotelID] || room.Hotel == nil {
			continue
		}
		seen[room.HotelID] = true
		hotels = append(hotels, *room.Hotel)
	}
	return hotels, nil
}

// RoomAvailable reports whether the room has no booking intersecting the stay.
func (r *Resolver) RoomAvailable(ctx context.Context, roomID uint, stay Stay) (bool, error) {
	if err := stay.Validate(); err != nil {
		return false, err
	}
	return roomAvailable(r.db.WithContext(ctx), roomID, stay, 0)
}

func roomAvailable(tx *gorm.DB, roomID uint, stay Stay, excludeBookingID uint) (bool, error) {
	var count int64
	err := bookedRooms(tx, stay, excludeBookingID).
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check availability of room %d: %w", roomID, err)
	}
	return count == 0, nil
}
