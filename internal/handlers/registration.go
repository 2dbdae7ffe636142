package handlers

import (
	"context"

	"github.com/gdg-garage/hotel-reservation-api/internal/guests"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

type RegistrationHandler struct {
	directory *guests.Directory
}

func NewRegistrationHandler(directory *guests.Directory) *RegistrationHandler {
	return &RegistrationHandler{directory: directory}
}

type RegistrationRequest struct {
	Body struct {
		Username  string         `json:"username" doc:"Login name" required:"true"`
		Password  string         `json:"password" doc:"Login password" required:"true"`
		Firstname string         `json:"firstname" doc:"First name"`
		Lastname  string         `json:"lastname" doc:"Last name"`
		Email     string         `json:"email" doc:"Contact email"`
		Address   models.Address `json:"address" doc:"Postal address"`
	}
}

type RegistrationResponse struct {
	Body struct {
		Message string        `json:"message"`
		Guest   *models.Guest `json:"guest"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	guest, err := h.directory.Register(ctx, guests.Registration{
		GuestDetails: guests.GuestDetails{
			Firstname: input.Body.Firstname,
			Lastname:  input.Body.Lastname,
			Email:     input.Body.Email,
			Address:   input.Body.Address,
		},
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, apiError(err)
	}

	res := &RegistrationResponse{}
	res.Body.Message = "Registration processed successfully"
	res.Body.Guest = guest
	return res, nil
}
