package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/hotel-reservation-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth         *auth.AuthHandler
	Registration *RegistrationHandler
	Catalog      *CatalogHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
}

func cookieAuth(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}}
}

func RegisterRoutes(r *chi.Mux, h Handlers) huma.API {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Hotel Reservation API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.TokenCookie,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	huma.Post(api, "/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/auth/logout", h.Auth.HandleLogout)
	huma.Get(api, "/me", h.Auth.HandleMe, cookieAuth)
	huma.Post(api, "/register", h.Registration.HandleRegister)

	// Catalog
	huma.Get(api, "/hotels", h.Catalog.HandleListHotels)
	huma.Get(api, "/hotels/{id}", h.Catalog.HandleGetHotel)
	huma.Get(api, "/cities", h.Catalog.HandleCities)

	// Availability
	huma.Get(api, "/availability/hotels", h.Availability.HandleHotels)
	huma.Get(api, "/availability/rooms", h.Availability.HandleRooms)

	// Bookings
	huma.Post(api, "/bookings", h.Booking.HandleCreate)
	huma.Get(api, "/bookings", h.Booking.HandleList, cookieAuth)
	huma.Get(api, "/bookings/{id}", h.Booking.HandleGet, cookieAuth)
	huma.Patch(api, "/bookings/{id}", h.Booking.HandleUpdate, cookieAuth)
	huma.Delete(api, "/bookings/{id}", h.Booking.HandleDelete, cookieAuth)
	huma.Get(api, "/bookings/{id}/history", h.Booking.HandleHistory, cookieAuth)
	huma.Post(api, "/bookings/{id}/receipt", h.Booking.HandleExportReceipt, cookieAuth)
	r.With(h.Auth.JWTMiddleware).Get("/bookings/{id}/receipt.txt", h.Booking.ServeReceipt)

	// Administration
	huma.Post(api, "/admin/hotels", h.Catalog.HandleCreateHotel, cookieAuth)
	huma.Patch(api, "/admin/hotels/{id}", h.Catalog.HandleUpdateHotel, cookieAuth)
	huma.Delete(api, "/admin/hotels/{id}", h.Catalog.HandleDeleteHotel, cookieAuth)
	huma.Post(api, "/admin/hotels/{id}/rooms", h.Catalog.HandleAddRoom, cookieAuth)
	huma.Patch(api, "/admin/rooms/{id}", h.Catalog.HandleUpdateRoom, cookieAuth)
	huma.Delete(api, "/admin/rooms/{id}", h.Catalog.HandleRemoveRoom, cookieAuth)

	return api
}
