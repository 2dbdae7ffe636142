package receipt

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

func TestExportAndRemove(t *testing.T) {
	e := NewExporter(t.TempDir())

	b := &models.Booking{
		ID:        7,
		Reference: "ref-7",
		GuestID:   3,
		Room: &models.Room{
			HotelID: 2,
			Number:  "101",
			Hotel:   &models.Hotel{Name: "Hotel Krafft"},
		},
		BookingFields: models.BookingFields{
			StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			PartySize: 2,
			Comment:   "trip",
		},
	}

	path, err := e.Export(b)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read receipt: %v", err)
	}
	for _, want := range []string{"Booking ID: 7", "Hotel: Hotel Krafft", "Room Number: 101", "Start Date: 01.06.2024", "End Date: 05.06.2024", "Comment: trip"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("receipt missing %q:\n%s", want, data)
		}
	}

	if err := e.Remove(7); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected receipt to be removed, stat err: %v", err)
	}

	t.Run("RemoveMissing", func(t *testing.T) {
		if err := e.Remove(99); err != nil {
			t.Errorf("expected nil for missing receipt, got %v", err)
		}
	})
}
