package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

func roomNumbers(rooms []models.Room) []string {
	numbers := make([]string, 0, len(rooms))
	for _, r := range rooms {
		numbers = append(numbers, r.Number)
	}
	return numbers
}

func containsRoom(rooms []models.Room, id uint) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}

func TestStay(t *testing.T) {
	if _, err := NewStay(date(2024, 1, 15), date(2024, 1, 10)); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}

	a := stay(t, date(2024, 1, 10), date(2024, 1, 15))
	b := stay(t, date(2024, 1, 15), date(2024, 1, 20))
	c := stay(t, date(2024, 1, 14), date(2024, 1, 16))

	if a.Overlaps(b) || b.Overlaps(a) {
		t.Error("back-to-back stays must not overlap")
	}
	if !a.Overlaps(c) || !c.Overlaps(b) {
		t.Error("expected intersecting stays to overlap")
	}
	if a.Nights() != 5 {
		t.Errorf("expected 5 nights, got %d", a.Nights())
	}
}

func TestFindRooms(t *testing.T) {
	f := newFixture(t)
	ledger := NewLedger(f.db, nil)
	resolver := NewResolver(f.db)
	ctx := context.Background()

	booked := f.room(t, f.krafft, "102")
	if _, err := ledger.CreateBooking(ctx, NewBooking{
		RoomID: booked.ID, GuestID: f.guest.ID, PartySize: 2,
		Stay: stay(t, date(2024, 6, 1), date(2024, 6, 5)),
	}); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	june := stay(t, date(2024, 6, 2), date(2024, 6, 4))

	t.Run("AllHotels", func(t *testing.T) {
		rooms, err := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1})
		if err != nil {
			t.Fatalf("FindRooms returned error: %v", err)
		}
		if len(rooms) != 2 || containsRoom(rooms, booked.ID) {
			t.Errorf("expected rooms 101 and 01, got %v", roomNumbers(rooms))
		}
		for _, r := range rooms {
			if r.Hotel == nil {
				t.Errorf("expected hotel of room %s to be loaded", r.Number)
			}
		}
	})

	t.Run("Capacity", func(t *testing.T) {
		rooms, _ := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 3})
		if len(rooms) != 1 || rooms[0].Number != "01" {
			t.Errorf("expected only the suite, got %v", roomNumbers(rooms))
		}
	})

	t.Run("Hotel", func(t *testing.T) {
		rooms, _ := resolver.FindRooms(ctx, Criteria{HotelID: f.krafft.ID, Stay: june, Guests: 1})
		if len(rooms) != 1 || rooms[0].Number != "101" {
			t.Errorf("expected room 101, got %v", roomNumbers(rooms))
		}
	})

	t.Run("City", func(t *testing.T) {
		rooms, _ := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, City: "bas"})
		if len(rooms) != 1 || rooms[0].HotelID != f.krafft.ID {
			t.Errorf("expected a Basel room, got %v", roomNumbers(rooms))
		}
	})

	t.Run("CityIsLiteral", func(t *testing.T) {
		for _, city := range []string{"_", "%", "b_s", "%el"} {
			rooms, err := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, City: city})
			if err != nil {
				t.Fatalf("FindRooms(%q) returned error: %v", city, err)
			}
			if len(rooms) != 0 {
				t.Errorf("city %q matched %v", city, roomNumbers(rooms))
			}
		}
	})

	t.Run("PriceRange", func(t *testing.T) {
		rooms, _ := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, MaxPrice: 500})
		if len(rooms) != 1 || rooms[0].Number != "101" {
			t.Errorf("expected room 101 up to 500, got %v", roomNumbers(rooms))
		}
		rooms, _ = resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, MinPrice: 500})
		if len(rooms) != 1 || rooms[0].Number != "01" {
			t.Errorf("expected the suite from 500, got %v", roomNumbers(rooms))
		}
		rooms, _ = resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, MinPrice: 120, MaxPrice: 120})
		if len(rooms) != 1 || rooms[0].Number != "101" {
			t.Errorf("expected bounds to be inclusive, got %v", roomNumbers(rooms))
		}
		_, err := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, MinPrice: 200, MaxPrice: 100})
		if !errors.Is(err, ErrInvalidPriceRange) {
			t.Errorf("expected ErrInvalidPriceRange, got %v", err)
		}
	})

	t.Run("OutOfService", func(t *testing.T) {
		single := f.room(t, f.krafft, "101")
		if err := f.db.Model(&single).Update("available", false).Error; err != nil {
			t.Fatalf("failed to take room out of service: %v", err)
		}
		defer f.db.Model(&single).Update("available", true)

		rooms, _ := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1})
		if containsRoom(rooms, single.ID) {
			t.Errorf("room out of service is listed: %v", roomNumbers(rooms))
		}
	})

	t.Run("Stars", func(t *testing.T) {
		rooms, _ := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, Stars: &StarFilter{Stars: 5, Mode: AtLeast}})
		if len(rooms) != 1 || rooms[0].HotelID != f.bern.ID {
			t.Errorf("expected the five star room, got %v", roomNumbers(rooms))
		}
		rooms, _ = resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1, Stars: &StarFilter{Stars: 4, Mode: AtMost}})
		if len(rooms) != 1 || rooms[0].HotelID != f.krafft.ID {
			t.Errorf("expected the four star room, got %v", roomNumbers(rooms))
		}
	})

	t.Run("AfterCheckout", func(t *testing.T) {
		after := stay(t, date(2024, 6, 5), date(2024, 6, 7))
		rooms, _ := resolver.FindRooms(ctx, Criteria{HotelID: f.krafft.ID, Stay: after, Guests: 1})
		if !containsRoom(rooms, booked.ID) {
			t.Errorf("expected room 102 to be free from the checkout day, got %v", roomNumbers(rooms))
		}
	})

	t.Run("InvalidCriteria", func(t *testing.T) {
		_, err := resolver.FindRooms(ctx, Criteria{Stay: Stay{Start: date(2024, 6, 4), End: date(2024, 6, 2)}, Guests: 1})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
		_, err = resolver.FindRooms(ctx, Criteria{Stay: june})
		if !errors.Is(err, ErrInvalidPartySize) {
			t.Errorf("expected ErrInvalidPartySize, got %v", err)
		}
	})

	t.Run("DeletedHotel", func(t *testing.T) {
		if err := f.db.Delete(&f.bern).Error; err != nil {
			t.Fatalf("failed to delete hotel: %v", err)
		}
		rooms, _ := resolver.FindRooms(ctx, Criteria{Stay: june, Guests: 1})
		for _, r := range rooms {
			if r.HotelID == f.bern.ID {
				t.Errorf("room %s of a deleted hotel is listed", r.Number)
			}
		}
	})
}

func TestFindHotels(t *testing.T) {
	f := newFixture(t)
	resolver := NewResolver(f.db)
	june := stay(t, date(2024, 6, 1), date(2024, 6, 3))

	hotels, err := resolver.FindHotels(context.Background(), Criteria{Stay: june, Guests: 1})
	if err != nil {
		t.Fatalf("FindHotels returned error: %v", err)
	}
	if len(hotels) != 2 {
		t.Fatalf("expected each hotel once, got %d", len(hotels))
	}
	if hotels[0].ID != f.krafft.ID || hotels[1].ID != f.bern.ID {
		t.Errorf("unexpected hotel order: %s, %s", hotels[0].Name, hotels[1].Name)
	}

	none, err := resolver.FindHotels(context.Background(), Criteria{Stay: june, Guests: 10})
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil list, got %v (%v)", none, err)
	}
}

func TestEndToEnd_Room101(t *testing.T) {
	f := newFixture(t)
	ledger := NewLedger(f.db, nil)
	resolver := NewResolver(f.db)
	ctx := context.Background()

	room := f.room(t, f.krafft, "101")
	if err := f.db.Model(&room).Update("capacity", 2).Error; err != nil {
		t.Fatalf("failed to update capacity: %v", err)
	}

	if _, err := ledger.CreateBooking(ctx, NewBooking{
		RoomID: room.ID, GuestID: f.guest.ID, PartySize: 2,
		Stay: stay(t, date(2024, 6, 1), date(2024, 6, 5)), Comment: "trip",
	}); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	rooms, err := resolver.FindRooms(ctx, Criteria{HotelID: f.krafft.ID, Stay: stay(t, date(2024, 6, 3), date(2024, 6, 7)), Guests: 1})
	if err != nil {
		t.Fatalf("FindRooms failed: %v", err)
	}
	if containsRoom(rooms, room.ID) {
		t.Error("room 101 must not be available during an overlapping stay")
	}

	rooms, err = resolver.FindRooms(ctx, Criteria{HotelID: f.krafft.ID, Stay: stay(t, date(2024, 6, 5), date(2024, 6, 7)), Guests: 1})
	if err != nil {
		t.Fatalf("FindRooms failed: %v", err)
	}
	if !containsRoom(rooms, room.ID) {
		t.Error("room 101 must be available from the checkout day")
	}

	free, err := resolver.RoomAvailable(ctx, room.ID, stay(t, date(2024, 6, 5), date(2024, 6, 7)))
	if err != nil || !free {
		t.Errorf("expected RoomAvailable to agree, got %v (%v)", free, err)
	}

	_, err = ledger.CreateBooking(ctx, NewBooking{
		RoomID: room.ID, GuestID: f.other.ID, PartySize: 3,
		Stay: stay(t, date(2024, 6, 5), date(2024, 6, 7)),
	})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}
