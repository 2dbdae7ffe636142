package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/hotel-reservation-api/internal/auth"
	"github.com/gdg-garage/hotel-reservation-api/internal/booking"
	"github.com/gdg-garage/hotel-reservation-api/internal/guests"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"github.com/gdg-garage/hotel-reservation-api/internal/notifier"
	"github.com/gdg-garage/hotel-reservation-api/internal/receipt"
	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	ledger      *booking.Ledger
	receipts    *receipt.Exporter
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewBookingHandler(ledger *booking.Ledger, receipts *receipt.Exporter, n notifier.Notifier, authHandler *auth.AuthHandler) *BookingHandler {
	if n == nil {
		n = notifier.LogNotifier{}
	}
	return &BookingHandler{
		ledger:      ledger,
		receipts:    receipts,
		notifier:    n,
		authHandler: authHandler,
	}
}

func (h *BookingHandler) notify(action string, b models.Booking) {
	if err := h.notifier.NotifyBooking(action, b); err != nil {
		log.Printf("Failed to send booking notification: %v", err)
	}
}

// owned loads a booking the principal may access.
func (h *BookingHandler) owned(ctx context.Context, cookie string, id uint) (*models.Booking, error) {
	p, err := h.authHandler.Authorize(ctx, cookie)
	if err != nil {
		return nil, err
	}

	b, err := h.ledger.GetBooking(ctx, id)
	if err != nil {
		return nil, apiError(err)
	}
	if !canAccess(p, b.GuestID) {
		return nil, huma.Error403Forbidden("Access denied: not your booking")
	}
	return b, nil
}

type GuestBody struct {
	Firstname string         `json:"firstname" required:"true"`
	Lastname  string         `json:"lastname" required:"true"`
	Email     string         `json:"email" required:"true"`
	Address   models.Address `json:"address"`
}

func (g GuestBody) details() guests.GuestDetails {
	return guests.GuestDetails{
		Firstname: g.Firstname,
		Lastname:  g.Lastname,
		Email:     g.Email,
		Address:   g.Address,
	}
}

type CreateBookingRequest struct {
	auth.AuthInput
	Body struct {
		RoomID    uint       `json:"room_id" doc:"Room to book" required:"true"`
		StartDate string     `json:"start_date" doc:"Arrival date (DD.MM.YY, DD.MM.YYYY or YYYY-MM-DD)" required:"true"`
		EndDate   string     `json:"end_date,omitempty" doc:"Departure date; alternatively use nights"`
		Nights    int        `json:"nights,omitempty" doc:"Number of nights, used when end_date is empty"`
		PartySize int        `json:"party_size" doc:"Number of guests" minimum:"1"`
		Comment   string     `json:"comment,omitempty"`
		Guest     *GuestBody `json:"guest,omitempty" doc:"Guest details for anonymous bookings"`
	}
}

type BookingOutput struct {
	Body *models.Booking
}

func (h *BookingHandler) HandleCreate(ctx context.Context, input *CreateBookingRequest) (*BookingOutput, error) {
	p, loggedIn, err := h.authHandler.OptionalPrincipal(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	stay, err := parseStay(input.Body.StartDate, input.Body.EndDate, input.Body.Nights)
	if err != nil {
		return nil, stayError(err)
	}

	req := booking.NewBooking{
		RoomID:    input.Body.RoomID,
		PartySize: input.Body.PartySize,
		Stay:      stay,
		Comment:   input.Body.Comment,
	}
	switch {
	case loggedIn && p.GuestID != 0:
		req.GuestID = p.GuestID
	case input.Body.Guest != nil:
		guest := input.Body.Guest.details().Model()
		req.Guest = &guest
	default:
		return nil, huma.Error401Unauthorized("Log in or provide guest details to book")
	}

	b, err := h.ledger.CreateBooking(ctx, req)
	if err != nil {
		return nil, apiError(err)
	}

	h.notify(notifier.ActionCreated, *b)
	return &BookingOutput{Body: b}, nil
}

type ListBookingsRequest struct {
	auth.AuthInput
	HotelID uint `query:"hotel_id" doc:"Bookings of one hotel (administrators only)"`
	GuestID uint `query:"guest_id" doc:"Bookings of one guest (administrators only)"`
}

type BookingsOutput struct {
	Body []models.Booking
}

// HandleList returns the caller's own bookings; administrators see all
// bookings, optionally narrowed to a hotel or a guest.
func (h *BookingHandler) HandleList(ctx context.Context, input *ListBookingsRequest) (*BookingsOutput, error) {
	p, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	filter := booking.BookingFilter{HotelID: input.HotelID, GuestID: input.GuestID}
	if !p.IsAdmin() {
		if p.GuestID == 0 {
			return &BookingsOutput{Body: []models.Booking{}}, nil
		}
		filter = booking.BookingFilter{GuestID: p.GuestID}
	}

	bookings, err := h.ledger.ListBookings(ctx, filter)
	if err != nil {
		return nil, apiError(err)
	}
	return &BookingsOutput{Body: bookings}, nil
}

type BookingIDRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *BookingHandler) HandleGet(ctx context.Context, input *BookingIDRequest) (*BookingOutput, error) {
	b, err := h.owned(ctx, input.Cookie, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookingOutput{Body: b}, nil
}

type UpdateBookingRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		StartDate *string `json:"start_date,omitempty" doc:"New arrival date"`
		EndDate   *string `json:"end_date,omitempty" doc:"New departure date"`
		Comment   *string `json:"comment,omitempty"`
		PartySize *int    `json:"party_size,omitempty"`
	}
}

func (h *BookingHandler) HandleUpdate(ctx context.Context, input *UpdateBookingRequest) (*BookingOutput, error) {
	if _, err := h.owned(ctx, input.Cookie, input.ID); err != nil {
		return nil, err
	}

	update := booking.BookingUpdate{Comment: input.Body.Comment, PartySize: input.Body.PartySize}
	if input.Body.StartDate != nil {
		t, err := parseDate(*input.Body.StartDate)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		update.StartDate = &t
	}
	if input.Body.EndDate != nil {
		t, err := parseDate(*input.Body.EndDate)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		update.EndDate = &t
	}

	b, err := h.ledger.UpdateBooking(ctx, input.ID, update)
	if err != nil {
		return nil, apiError(err)
	}

	h.notify(notifier.ActionUpdated, *b)
	return &BookingOutput{Body: b}, nil
}

func (h *BookingHandler) HandleDelete(ctx context.Context, input *BookingIDRequest) (*struct{}, error) {
	b, err := h.owned(ctx, input.Cookie, input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.ledger.DeleteBooking(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}

	h.notify(notifier.ActionCancelled, *b)
	return nil, nil
}

type HistoryOutput struct {
	Body []models.BookingHistory
}

// HandleHistory also works for cancelled bookings; ownership is taken from
// the snapshots.
func (h *BookingHandler) HandleHistory(ctx context.Context, input *BookingIDRequest) (*HistoryOutput, error) {
	p, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	history, err := h.ledger.History(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	if !canAccess(p, history[0].GuestID) {
		return nil, huma.Error403Forbidden("Access denied: not your booking")
	}
	return &HistoryOutput{Body: history}, nil
}

type ExportReceiptOutput struct {
	Body struct {
		Path string `json:"path"`
	}
}

func (h *BookingHandler) HandleExportReceipt(ctx context.Context, input *BookingIDRequest) (*ExportReceiptOutput, error) {
	b, err := h.owned(ctx, input.Cookie, input.ID)
	if err != nil {
		return nil, err
	}

	path, err := h.receipts.Export(b)
	if err != nil {
		log.Printf("Failed to export receipt of booking %d: %v", b.ID, err)
		return nil, huma.Error500InternalServerError("Failed to export receipt")
	}

	res := &ExportReceiptOutput{}
	res.Body.Path = path
	return res, nil
}

// ServeReceipt is a plain chi handler behind JWTMiddleware returning the
// booking summary as text.
func (h *BookingHandler) ServeReceipt(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}

	b, err := h.ledger.GetBooking(r.Context(), uint(id))
	if err != nil {
		statusErr := apiError(err).(huma.StatusError)
		http.Error(w, statusErr.Error(), statusErr.GetStatus())
		return
	}
	if !canAccess(p, b.GuestID) {
		http.Error(w, "Access denied: not your booking", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"booking_%d.txt\"", b.ID))
	w.Write([]byte(receipt.Render(b)))
}
