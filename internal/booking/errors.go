package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrRoomUnavailable  = errors.New("room is already booked for an overlapping date range")
	ErrCapacityExceeded = errors.New("party size exceeds room capacity")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrInvalidPartySize = errors.New("party size must be at least 1")

	ErrInvalidPriceRange = errors.New("price range must be non-negative with min not above max")

	// ErrRoomOutOfService is also an ErrRoomUnavailable.
	ErrRoomOutOfService = fmt.Errorf("room is out of service: %w", ErrRoomUnavailable)
)
