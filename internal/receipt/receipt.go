// Package receipt writes plain-text booking summaries to disk.
package receipt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

func (e *Exporter) Path(bookingID uint) string {
	return filepath.Join(e.dir, fmt.Sprintf("booking_%d.txt", bookingID))
}

// Export writes the summary of b and returns the file path. The booking must
// have its room (and the room its hotel) loaded for those lines to be filled.
func (e *Exporter) Export(b *models.Booking) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create receipt dir: %w", err)
	}

	path := e.Path(b.ID)
	if err := os.WriteFile(path, []byte(Render(b)), 0o644); err != nil {
		return "", fmt.Errorf("write receipt %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes the receipt of a booking; a missing file is not an error.
func (e *Exporter) Remove(bookingID uint) error {
	err := os.Remove(e.Path(bookingID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func Render(b *models.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking ID: %d\n", b.ID)
	fmt.Fprintf(&sb, "Reference: %s\n", b.Reference)
	if b.Room != nil {
		if b.Room.Hotel != nil {
			fmt.Fprintf(&sb, "Hotel: %s\n", b.Room.Hotel.Name)
		}
		fmt.Fprintf(&sb, "Hotel ID: %d\n", b.Room.HotelID)
		fmt.Fprintf(&sb, "Room Number: %s\n", b.Room.Number)
	}
	fmt.Fprintf(&sb, "Guest ID: %d\n", b.GuestID)
	fmt.Fprintf(&sb, "Number of Guests: %d\n", b.PartySize)
	fmt.Fprintf(&sb, "Start Date: %s\n", b.StartDate.Format("02.01.2006"))
	fmt.Fprintf(&sb, "End Date: %s\n", b.EndDate.Format("02.01.2006"))
	fmt.Fprintf(&sb, "Comment: %s\n", b.Comment)
	return sb.String()
}
