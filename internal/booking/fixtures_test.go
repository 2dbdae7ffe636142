package booking

import (
	"testing"
	"time"

	"github.com/gdg-garage/hotel-reservation-api/internal/database"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	krafft models.Hotel
	bern   models.Hotel
	guest  models.Guest
	other  models.Guest
}

// room returns the room of hotel h with the given number.
func (f *fixture) room(t *testing.T, h models.Hotel, number string) models.Room {
	t.Helper()
	var room models.Room
	if err := f.db.Where("hotel_id = ? AND number = ?", h.ID, number).First(&room).Error; err != nil {
		t.Fatalf("room %s not found: %v", number, err)
	}
	return room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	f := &fixture{db: db}
	f.krafft = models.Hotel{
		Name:    "Hotel Krafft",
		Stars:   4,
		Address: models.Address{Street: "Rheingasse 12", Zip: "4058", City: "Basel"},
		Rooms: []models.Room{
			{Number: "101", Type: "Single", Capacity: 1, Price: 120},
			{Number: "102", Type: "Double", Capacity: 2, Price: 180},
		},
	}
	f.bern = models.Hotel{
		Name:    "Bellevue Palace",
		Stars:   5,
		Address: models.Address{Street: "Kochergasse 3-5", Zip: "3011", City: "Bern"},
		Rooms: []models.Room{
			{Number: "01", Type: "Suite", Capacity: 4, Price: 900},
		},
	}
	for _, h := range []*models.Hotel{&f.krafft, &f.bern} {
		if err := db.Create(h).Error; err != nil {
			t.Fatalf("failed to create hotel: %v", err)
		}
	}

	f.guest = models.Guest{Firstname: "Anna", Lastname: "Muster", Email: "anna@example.com"}
	f.other = models.Guest{Firstname: "Beat", Lastname: "Keller", Email: "beat@example.com"}
	for _, g := range []*models.Guest{&f.guest, &f.other} {
		if err := db.Create(g).Error; err != nil {
			t.Fatalf("failed to create guest: %v", err)
		}
	}
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(t *testing.T, start, end time.Time) Stay {
	t.Helper()
	s, err := NewStay(start, end)
	if err != nil {
		t.Fatalf("invalid stay %v - %v: %v", start, end, err)
	}
	return s
}
