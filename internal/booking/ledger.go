// Package booking keeps the booking ledger and resolves room availability.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReceiptRemover deletes the exported summary of a booking, if any.
type ReceiptRemover interface {
	Remove(bookingID uint) error
}

type Ledger struct {
	db       *gorm.DB
	receipts ReceiptRemover
	locks    *roomLocks
}

func NewLedger(db *gorm.DB, receipts ReceiptRemover) *Ledger {
	return &Ledger{db: db, receipts: receipts, locks: newRoomLocks()}
}

// NewBooking books RoomID for GuestID. An anonymous caller passes Guest
// instead; it is stored in the same transaction as the booking, so a rejected
// request leaves no guest behind.
type NewBooking struct {
	RoomID    uint
	GuestID   uint
	Guest     *models.Guest
	PartySize int
	Stay      Stay
	Comment   string
}

// BookingUpdate lists the only mutable booking fields; nil means unchanged.
type BookingUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	Comment   *string
	PartySize *int
}

func (u BookingUpdate) changesReservation() bool {
	return u.StartDate != nil || u.EndDate != nil || u.PartySize != nil
}

// BookingFilter selects bookings of one guest, of one hotel, or all of them.
type BookingFilter struct {
	GuestID uint
	HotelID uint
}

func (l *Ledger) CreateBooking(ctx context.Context, in NewBooking) (*models.Booking, error) {
	if err := in.Stay.Validate(); err != nil {
		return nil, err
	}
	if in.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}
	if in.Guest == nil && in.GuestID == 0 {
		return nil, ErrGuestNotFound
	}

	unlock := l.locks.lock(in.RoomID)
	defer unlock()

	booking := models.Booking{
		Reference: uuid.NewString(),
		RoomID:    in.RoomID,
		GuestID:   in.GuestID,
		BookingFields: models.BookingFields{
			StartDate: Day(in.Stay.Start),
			EndDate:   Day(in.Stay.End),
			PartySize: in.PartySize,
			Comment:   strings.TrimSpace(in.Comment),
		},
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, in.RoomID)
		if err != nil {
			return err
		}

		if in.Guest == nil {
			var guests int64
			if err := tx.Model(&models.Guest{}).Where("id = ?", in.GuestID).Count(&guests).Error; err != nil {
				return fmt.Errorf("check guest %d: %w", in.GuestID, err)
			}
			if guests == 0 {
				return ErrGuestNotFound
			}
		}

		if !room.Available {
			return ErrRoomOutOfService
		}
		if in.PartySize > room.Capacity {
			return ErrCapacityExceeded
		}

		free, err := roomAvailable(tx, room.ID, Stay{Start: booking.StartDate, End: booking.EndDate}, 0)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		if in.Guest != nil {
			if err := tx.Create(in.Guest).Error; err != nil {
				return fmt.Errorf("create guest: %w", err)
			}
			booking.GuestID = in.Guest.ID
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return recordHistory(tx, models.HistoryCreated, booking)
	})
	if err != nil {
		return nil, err
	}

	stay := Stay{Start: booking.StartDate, End: booking.EndDate}
	log.Printf("Booking %d created: room %d, guest %d, %s - %s (%d nights)",
		booking.ID, booking.RoomID, booking.GuestID,
		stay.Start.Format("2006-01-02"), stay.End.Format("2006-01-02"), stay.Nights())
	return l.GetBooking(ctx, booking.ID)
}

func (l *Ledger) UpdateBooking(ctx context.Context, id uint, in BookingUpdate) (*models.Booking, error) {
	if in.PartySize != nil && *in.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	current, err := l.findBooking(l.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	// The room of a booking never changes, so its lock can be taken up front.
	unlock := l.locks.lock(current.RoomID)
	defer unlock()

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := l.findBooking(tx, id)
		if err != nil {
			return err
		}

		fields := booking.BookingFields
		if in.StartDate != nil {
			fields.StartDate = Day(*in.StartDate)
		}
		if in.EndDate != nil {
			fields.EndDate = Day(*in.EndDate)
		}
		if in.PartySize != nil {
			fields.PartySize = *in.PartySize
		}
		if in.Comment != nil {
			fields.Comment = strings.TrimSpace(*in.Comment)
		}

		stay := Stay{Start: fields.StartDate, End: fields.EndDate}
		if err := stay.Validate(); err != nil {
			return err
		}

		if in.changesReservation() {
			room, err := lockRoom(tx, booking.RoomID)
			if err != nil {
				return err
			}
			if !room.Available {
				return ErrRoomOutOfService
			}
			if fields.PartySize > room.Capacity {
				return ErrCapacityExceeded
			}
			free, err := roomAvailable(tx, booking.RoomID, stay, booking.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}
		}

		err = tx.Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
			"start_date": fields.StartDate,
			"end_date":   fields.EndDate,
			"party_size": fields.PartySize,
			"comment":    fields.Comment,
		}).Error
		if err != nil {
			return fmt.Errorf("update booking %d: %w", id, err)
		}

		booking.BookingFields = fields
		return recordHistory(tx, models.HistoryUpdated, *booking)
	})
	if err != nil {
		return nil, err
	}

	return l.GetBooking(ctx, id)
}

// DeleteBooking removes the booking and then, best effort, its exported receipt.
func (l *Ledger) DeleteBooking(ctx context.Context, id uint) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := l.findBooking(tx, id)
		if err != nil {
			return err
		}

		res := tx.Delete(&models.Booking{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete booking %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrBookingNotFound
		}
		return recordHistory(tx, models.HistoryDeleted, *booking)
	})
	if err != nil {
		return err
	}

	if l.receipts != nil {
		if err := l.receipts.Remove(id); err != nil {
			log.Printf("Failed to remove receipt of booking %d: %v", id, err)
		}
	}
	log.Printf("Booking %d deleted", id)
	return nil
}

func (l *Ledger) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := withRelations(l.db.WithContext(ctx)).First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return &booking, nil
}

func (l *Ledger) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := withRelations(l.db.WithContext(ctx).Model(&models.Booking{}))
	if f.GuestID != 0 {
		q = q.Where("bookings.guest_id = ?", f.GuestID)
	}
	if f.HotelID != 0 {
		q = q.Joins("JOIN rooms ON rooms.id = bookings.room_id").
			Where("rooms.hotel_id = ?", f.HotelID)
	}

	bookings := []models.Booking{}
	if err := q.Order("bookings.start_date").Order("bookings.id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// History returns the audit snapshots of a booking, oldest first. It stays
// available after the booking itself has been deleted.
func (l *Ledger) History(ctx context.Context, id uint) ([]models.BookingHistory, error) {
	history := []models.BookingHistory{}
	err := l.db.WithContext(ctx).
		Where("booking_id = ?", id).
		Order("id").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("load history of booking %d: %w", id, err)
	}
	if len(history) == 0 {
		return nil, ErrBookingNotFound
	}
	return history, nil
}

func (l *Ledger) findBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	return &booking, nil
}

// lockRoom loads the room with a row lock where the dialect supports one.
func lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room %d: %w", roomID, err)
	}
	return &room, nil
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Room", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Room.Hotel", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Guest")
}

func recordHistory(tx *gorm.DB, action string, b models.Booking) error {
	entry := models.BookingHistory{
		BookingID:     b.ID,
		Reference:     b.Reference,
		Action:        action,
		RoomID:        b.RoomID,
		GuestID:       b.GuestID,
		BookingFields: b.BookingFields,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record %s history of booking %d: %w", action, b.ID, err)
	}
	return nil
}
