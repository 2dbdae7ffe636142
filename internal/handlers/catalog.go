package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/hotel-reservation-api/internal/auth"
	"github.com/gdg-garage/hotel-reservation-api/internal/catalog"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

type CatalogHandler struct {
	catalog     *catalog.Catalog
	authHandler *auth.AuthHandler
}

func NewCatalogHandler(c *catalog.Catalog, authHandler *auth.AuthHandler) *CatalogHandler {
	return &CatalogHandler{catalog: c, authHandler: authHandler}
}

func (h *CatalogHandler) requireAdmin(ctx context.Context, cookie string) error {
	p, err := h.authHandler.Authorize(ctx, cookie)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return huma.Error403Forbidden("Access denied: administrators only")
	}
	return nil
}

type RoomBody struct {
	Number      string   `json:"number" doc:"Room number, unique within the hotel" required:"true"`
	Type        string   `json:"type" doc:"Room type, e.g. Single or Double"`
	Capacity    int      `json:"capacity" doc:"Maximum number of guests" minimum:"1"`
	Price       float64  `json:"price" doc:"Price per night"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

func (b RoomBody) spec() catalog.RoomSpec {
	return catalog.RoomSpec{
		Number:      b.Number,
		Type:        b.Type,
		Capacity:    b.Capacity,
		Price:       b.Price,
		Description: b.Description,
		Amenities:   b.Amenities,
	}
}

type HotelOutput struct {
	Body *models.Hotel
}

type HotelsOutput struct {
	Body []models.Hotel
}

func (h *CatalogHandler) HandleListHotels(ctx context.Context, input *struct{}) (*HotelsOutput, error) {
	hotels, err := h.catalog.Hotels(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &HotelsOutput{Body: hotels}, nil
}

type HotelIDInput struct {
	ID uint `path:"id"`
}

func (h *CatalogHandler) HandleGetHotel(ctx context.Context, input *HotelIDInput) (*HotelOutput, error) {
	hotel, err := h.catalog.Hotel(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &HotelOutput{Body: hotel}, nil
}

type CitiesOutput struct {
	Body []string
}

func (h *CatalogHandler) HandleCities(ctx context.Context, input *struct{}) (*CitiesOutput, error) {
	cities, err := h.catalog.Cities(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	return &CitiesOutput{Body: cities}, nil
}

type CreateHotelRequest struct {
	auth.AuthInput
	Body struct {
		Name    string         `json:"name" required:"true"`
		Stars   int            `json:"stars" minimum:"1" maximum:"5"`
		Address models.Address `json:"address"`
		Rooms   []RoomBody     `json:"rooms" doc:"At least one room is required"`
	}
}

func (h *CatalogHandler) HandleCreateHotel(ctx context.Context, input *CreateHotelRequest) (*HotelOutput, error) {
	if err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	in := catalog.NewHotel{Name: input.Body.Name, Stars: input.Body.Stars, Address: input.Body.Address}
	for _, r := range input.Body.Rooms {
		in.Rooms = append(in.Rooms, r.spec())
	}

	hotel, err := h.catalog.CreateHotel(ctx, in)
	if err != nil {
		return nil, apiError(err)
	}
	return &HotelOutput{Body: hotel}, nil
}

type UpdateHotelRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Name    *string         `json:"name,omitempty"`
		Stars   *int            `json:"stars,omitempty"`
		Address *models.Address `json:"address,omitempty"`
	}
}

func (h *CatalogHandler) HandleUpdateHotel(ctx context.Context, input *UpdateHotelRequest) (*HotelOutput, error) {
	if err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	hotel, err := h.catalog.UpdateHotel(ctx, input.ID, catalog.HotelUpdate{
		Name:    input.Body.Name,
		Stars:   input.Body.Stars,
		Address: input.Body.Address,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &HotelOutput{Body: hotel}, nil
}

type DeleteHotelRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *CatalogHandler) HandleDeleteHotel(ctx context.Context, input *DeleteHotelRequest) (*struct{}, error) {
	if err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if err := h.catalog.DeleteHotel(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}

type RoomOutput struct {
	Body *models.Room
}

type AddRoomRequest struct {
	auth.AuthInput
	HotelID uint `path:"id"`
	Body    RoomBody
}

func (h *CatalogHandler) HandleAddRoom(ctx context.Context, input *AddRoomRequest) (*RoomOutput, error) {
	if err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	room, err := h.catalog.AddRoom(ctx, input.HotelID, input.Body.spec())
	if err != nil {
		return nil, apiError(err)
	}
	return &RoomOutput{Body: room}, nil
}

type UpdateRoomRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Type        *string  `json:"type,omitempty"`
		Capacity    *int     `json:"capacity,omitempty"`
		Price       *float64 `json:"price,omitempty"`
		Description *string  `json:"description,omitempty"`
		Amenities   []string `json:"amenities,omitempty"`
		Available   *bool    `json:"available,omitempty" doc:"false takes the room out of service"`
	}
}

func (h *CatalogHandler) HandleUpdateRoom(ctx context.Context, input *UpdateRoomRequest) (*RoomOutput, error) {
	if err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	room, err := h.catalog.UpdateRoom(ctx, input.ID, catalog.RoomUpdate{
		Type:        input.Body.Type,
		Capacity:    input.Body.Capacity,
		Price:       input.Body.Price,
		Description: input.Body.Description,
		Amenities:   input.Body.Amenities,
		Available:   input.Body.Available,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &RoomOutput{Body: room}, nil
}

type DeleteRoomRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *CatalogHandler) HandleRemoveRoom(ctx context.Context, input *DeleteRoomRequest) (*struct{}, error) {
	if err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if err := h.catalog.RemoveRoom(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
