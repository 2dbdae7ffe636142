package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/hotel-reservation-api/internal/booking"
)

var dateLayouts = []string{"02.01.2006", "02.01.06", "2006-01-02"}

// parseDate accepts DD.MM.YYYY, DD.MM.YY and YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected DD.MM.YY, DD.MM.YYYY or YYYY-MM-DD", s)
}

// parseStay builds a stay from a start date and either an end date or a
// number of nights.
func parseStay(start, end string, nights int) (booking.Stay, error) {
	from, err := parseDate(start)
	if err != nil {
		return booking.Stay{}, err
	}

	var to time.Time
	switch {
	case strings.TrimSpace(end) != "":
		if to, err = parseDate(end); err != nil {
			return booking.Stay{}, err
		}
	case nights > 0:
		to = from.AddDate(0, 0, nights)
	default:
		return booking.Stay{}, fmt.Errorf("either an end date or a number of nights is required")
	}

	return booking.NewStay(from, to)
}

// stayError reports malformed input as 400 and domain violations through apiError.
func stayError(err error) error {
	if errors.Is(err, booking.ErrInvalidDateRange) {
		return apiError(err)
	}
	return huma.Error400BadRequest(err.Error())
}
