package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/gdg-garage/hotel-reservation-api/internal/booking"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"01.06.2024", "01.06.24", "2024-06-01", " 01.06.2024 "} {
		got, err := parseDate(in)
		if err != nil {
			t.Errorf("parseDate(%q) returned error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parseDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "1/6/2024", "32.01.2024"} {
		if _, err := parseDate(in); err == nil {
			t.Errorf("parseDate(%q) expected error", in)
		}
	}
}

func TestParseStay(t *testing.T) {
	s, err := parseStay("01.06.2024", "", 3)
	if err != nil {
		t.Fatalf("parseStay returned error: %v", err)
	}
	if s.Nights() != 3 {
		t.Errorf("expected 3 nights, got %d", s.Nights())
	}

	s, err = parseStay("01.06.2024", "05.06.2024", 10)
	if err != nil || s.Nights() != 4 {
		t.Errorf("end date must win over nights, got %d nights (%v)", s.Nights(), err)
	}

	if _, err := parseStay("01.06.2024", "", 0); err == nil {
		t.Error("expected error without end date or nights")
	}
	if _, err := parseStay("05.06.2024", "05.06.2024", 0); !errors.Is(err, booking.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}
