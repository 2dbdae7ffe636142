package booking

import "time"

// Stay is a half-open date range [Start, End).
type Stay struct {
	Start time.Time
	End   time.Time
}

// NewStay normalises both dates to UTC midnight and validates the order.
func NewStay(start, end time.Time) (Stay, error) {
	s := Stay{Start: Day(start), End: Day(end)}
	if err := s.Validate(); err != nil {
		return Stay{}, err
	}
	return s, nil
}

func (s Stay) Validate() error {
	if !s.Start.Before(s.End) {
		return ErrInvalidDateRange
	}
	return nil
}

// Overlaps reports whether two half-open ranges intersect.
func (s Stay) Overlaps(o Stay) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

func (s Stay) Nights() int {
	return int(s.End.Sub(s.Start).Hours() / 24)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
