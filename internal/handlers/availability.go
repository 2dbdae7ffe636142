package handlers

import (
	"context"

	"github.com/gdg-garage/hotel-reservation-api/internal/booking"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

type AvailabilityHandler struct {
	resolver *booking.Resolver
}

func NewAvailabilityHandler(resolver *booking.Resolver) *AvailabilityHandler {
	return &AvailabilityHandler{resolver: resolver}
}

type AvailabilityQuery struct {
	Start     string  `query:"start" doc:"Arrival date (DD.MM.YY, DD.MM.YYYY or YYYY-MM-DD)" required:"true"`
	End       string  `query:"end" doc:"Departure date; alternatively use nights"`
	Nights    int     `query:"nights" doc:"Number of nights, used when end is empty"`
	Guests    int     `query:"guests" doc:"Party size" default:"1"`
	HotelID   uint    `query:"hotel_id" doc:"Restrict the search to one hotel"`
	City      string  `query:"city" doc:"Substring of the hotel city"`
	Stars     int     `query:"stars" doc:"Star rating filter, 0 disables it"`
	StarsMode string  `query:"stars_mode" enum:"at_least,at_most" default:"at_least"`
	MinPrice  float64 `query:"min_price" doc:"Lowest nightly price, 0 disables it"`
	MaxPrice  float64 `query:"max_price" doc:"Highest nightly price, 0 disables it"`
}

func (q AvailabilityQuery) criteria() (booking.Criteria, error) {
	stay, err := parseStay(q.Start, q.End, q.Nights)
	if err != nil {
		return booking.Criteria{}, err
	}

	c := booking.Criteria{
		HotelID:  q.HotelID,
		Stay:     stay,
		Guests:   q.Guests,
		City:     q.City,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
	if q.Stars > 0 {
		mode := booking.AtLeast
		if q.StarsMode == "at_most" {
			mode = booking.AtMost
		}
		c.Stars = &booking.StarFilter{Stars: q.Stars, Mode: mode}
	}
	return c, nil
}

type AvailableRoomsOutput struct {
	Body []models.Room
}

func (h *AvailabilityHandler) HandleRooms(ctx context.Context, input *AvailabilityQuery) (*AvailableRoomsOutput, error) {
	c, err := input.criteria()
	if err != nil {
		return nil, stayError(err)
	}

	rooms, err := h.resolver.FindRooms(ctx, c)
	if err != nil {
		return nil, apiError(err)
	}
	return &AvailableRoomsOutput{Body: rooms}, nil
}

type AvailableHotelsOutput struct {
	Body []models.Hotel
}

func (h *AvailabilityHandler) HandleHotels(ctx context.Context, input *AvailabilityQuery) (*AvailableHotelsOutput, error) {
	c, err := input.criteria()
	if err != nil {
		return nil, stayError(err)
	}

	hotels, err := h.resolver.FindHotels(ctx, c)
	if err != nil {
		return nil, apiError(err)
	}
	return &AvailableHotelsOutput{Body: hotels}, nil
}
