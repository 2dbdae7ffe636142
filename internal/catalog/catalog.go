// Package catalog manages the hotel and room inventory.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrHotelHasNoRooms     = errors.New("hotel must have at least one room")
	ErrDuplicateRoomNumber = errors.New("room number already exists in this hotel")
	ErrInvalidStars        = errors.New("stars must be between 1 and 5")
	ErrInvalidCapacity     = errors.New("room capacity must be at least 1")
)

type Catalog struct {
	db       *gorm.DB
	removals sync.Mutex
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

type RoomSpec struct {
	Number      string
	Type        string
	Capacity    int
	Price       float64
	Description string
	Amenities   []string
}

func (s RoomSpec) model() models.Room {
	return models.Room{
		Number:      strings.TrimSpace(s.Number),
		Type:        s.Type,
		Capacity:    s.Capacity,
		Price:       s.Price,
		Description: s.Description,
		Amenities:   s.Amenities,
		Available:   true,
	}
}

type NewHotel struct {
	Name    string
	Stars   int
	Address models.Address
	Rooms   []RoomSpec
}

// HotelUpdate only touches non-nil fields.
type HotelUpdate struct {
	Name    *string
	Stars   *int
	Address *models.Address
}

type RoomUpdate struct {
	Type        *string
	Capacity    *int
	Price       *float64
	Description *string
	Amenities   []string
	// Available takes a room out of service or back in.
	Available *bool
}

func validStars(stars int) bool {
	return stars >= 1 && stars <= 5
}

func (c *Catalog) CreateHotel(ctx context.Context, in NewHotel) (*models.Hotel, error) {
	if len(in.Rooms) == 0 {
		return nil, ErrHotelHasNoRooms
	}
	if !validStars(in.Stars) {
		return nil, ErrInvalidStars
	}

	seen := make(map[string]bool, len(in.Rooms))
	hotel := models.Hotel{Name: in.Name, Stars: in.Stars, Address: in.Address}
	for _, spec := range in.Rooms {
		room := spec.model()
		if room.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		if seen[room.Number] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, room.Number)
		}
		seen[room.Number] = true
		hotel.Rooms = append(hotel.Rooms, room)
	}

	if err := c.db.WithContext(ctx).Create(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, fmt.Errorf("create hotel: %w", err)
	}
	return &hotel, nil
}

func (c *Catalog) UpdateHotel(ctx context.Context, id uint, in HotelUpdate) (*models.Hotel, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Stars != nil {
		if !validStars(*in.Stars) {
			return nil, ErrInvalidStars
		}
		updates["stars"] = *in.Stars
	}
	if in.Address != nil {
		updates["address_street"] = in.Address.Street
		updates["address_zip"] = in.Address.Zip
		updates["address_city"] = in.Address.City
	}

	hotel, err := c.Hotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return hotel, nil
	}

	if err := c.db.WithContext(ctx).Model(hotel).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update hotel %d: %w", id, err)
	}
	return c.Hotel(ctx, id)
}

// DeleteHotel soft-deletes the hotel together with its rooms. Bookings are
// kept and still resolve their room through unscoped preloads.
func (c *Catalog) DeleteHotel(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Hotel{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete hotel %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrHotelNotFound
		}
		if err := tx.Where("hotel_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return fmt.Errorf("delete rooms of hotel %d: %w", id, err)
		}
		return nil
	})
}

func (c *Catalog) Hotel(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := c.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		First(&hotel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load hotel %d: %w", id, err)
	}
	return &hotel, nil
}

func (c *Catalog) Hotels(ctx context.Context) ([]models.Hotel, error) {
	hotels := []models.Hotel{}
	err := c.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Order("id").
		Find(&hotels).Error
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

// Cities returns the distinct cities that have at least one hotel.
func (c *Catalog) Cities(ctx context.Context) ([]string, error) {
	cities := []string{}
	if err := c.db.WithContext(ctx).Model(&models.Hotel{}).Distinct().Pluck("address_city", &cities).Error; err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	sort.Strings(cities)
	return cities, nil
}

func (c *Catalog) Room(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := c.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room %d: %w", id, err)
	}
	return &room, nil
}

func (c *Catalog) AddRoom(ctx context.Context, hotelID uint, spec RoomSpec) (*models.Room, error) {
	room := spec.model()
	if room.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	room.HotelID = hotelID

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hotel models.Hotel
		if err := tx.First(&hotel, hotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHotelNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Room{}).Where("hotel_id = ? AND number = ?", hotelID, room.Number).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateRoomNumber
		}

		return tx.Create(&room).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRoomNumber
		}
		if errors.Is(err, ErrHotelNotFound) || errors.Is(err, ErrDuplicateRoomNumber) {
			return nil, err
		}
		return nil, fmt.Errorf("add room to hotel %d: %w", hotelID, err)
	}
	return &room, nil
}

// UpdateRoom changes inventory attributes. Lowering the capacity does not
// touch existing bookings; the ledger validates capacity on the next write.
func (c *Catalog) UpdateRoom(ctx context.Context, id uint, in RoomUpdate) (*models.Room, error) {
	room, err := c.Room(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Type != nil {
		updates["type"] = *in.Type
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		updates["capacity"] = *in.Capacity
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Amenities != nil {
		updates["amenities"] = datatypes.JSONSlice[string](in.Amenities)
	}
	if in.Available != nil {
		updates["available"] = *in.Available
	}
	if len(updates) == 0 {
		return room, nil
	}

	if err := c.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}
	return c.Room(ctx, id)
}

// RemoveRoom refuses to remove the last room of a hotel. Removals are
// serialised in process and on the hotel row.
func (c *Catalog) RemoveRoom(ctx context.Context, id uint) error {
	c.removals.Lock()
	defer c.removals.Unlock()

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("load room %d: %w", id, err)
		}

		var hotel models.Hotel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&hotel, room.HotelID).Error; err != nil {
			return fmt.Errorf("lock hotel %d: %w", room.HotelID, err)
		}

		var count int64
		if err := tx.Model(&models.Room{}).Where("hotel_id = ?", room.HotelID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrHotelHasNoRooms
		}

		return tx.Delete(&room).Error
	})
}
