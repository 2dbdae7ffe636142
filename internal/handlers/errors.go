package handlers

import (
	"errors"
	"log"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/hotel-reservation-api/internal/auth"
	"github.com/gdg-garage/hotel-reservation-api/internal/booking"
	"github.com/gdg-garage/hotel-reservation-api/internal/catalog"
	"github.com/gdg-garage/hotel-reservation-api/internal/guests"
)

// apiError maps domain errors onto HTTP statuses. Unknown errors are logged
// and reported as 500 without their details.
func apiError(err error) error {
	var statusErr huma.StatusError
	switch {
	case errors.As(err, &statusErr):
		return err
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrRoomNotFound),
		errors.Is(err, booking.ErrGuestNotFound),
		errors.Is(err, catalog.ErrHotelNotFound),
		errors.Is(err, catalog.ErrRoomNotFound),
		errors.Is(err, guests.ErrGuestNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, booking.ErrRoomOutOfService):
		return huma.Error409Conflict("room is out of service")
	case errors.Is(err, booking.ErrRoomUnavailable),
		errors.Is(err, guests.ErrDuplicateAccount),
		errors.Is(err, catalog.ErrDuplicateRoomNumber):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, booking.ErrCapacityExceeded),
		errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrInvalidPartySize),
		errors.Is(err, booking.ErrInvalidPriceRange),
		errors.Is(err, catalog.ErrHotelHasNoRooms),
		errors.Is(err, catalog.ErrInvalidStars),
		errors.Is(err, catalog.ErrInvalidCapacity),
		errors.Is(err, guests.ErrMissingCredentials):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, auth.ErrTooManyAttempts):
		return huma.Error429TooManyRequests(err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		return huma.Error500InternalServerError("Internal server error")
	}
}

// canAccess reports whether p may read or change a booking of guestID.
func canAccess(p auth.Principal, guestID uint) bool {
	return p.IsAdmin() || (p.GuestID != 0 && p.GuestID == guestID)
}
