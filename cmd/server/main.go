package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gdg-garage/hotel-reservation-api/internal/auth"
	"github.com/gdg-garage/hotel-reservation-api/internal/booking"
	"github.com/gdg-garage/hotel-reservation-api/internal/catalog"
	"github.com/gdg-garage/hotel-reservation-api/internal/config"
	"github.com/gdg-garage/hotel-reservation-api/internal/database"
	"github.com/gdg-garage/hotel-reservation-api/internal/guests"
	"github.com/gdg-garage/hotel-reservation-api/internal/handlers"
	"github.com/gdg-garage/hotel-reservation-api/internal/notifier"
	"github.com/gdg-garage/hotel-reservation-api/internal/receipt"
	"github.com/go-chi/chi/v5"
)

func newNotifier(cfg *config.Config) notifier.Notifier {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return notifier.LogNotifier{}
	}
	session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
		return notifier.LogNotifier{}
	}
	return notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
}

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Domain services
	receipts := receipt.NewExporter(cfg.ReceiptDir)
	hotels := catalog.New(db)
	resolver := booking.NewResolver(db)
	ledger := booking.NewLedger(db, receipts)
	directory := guests.NewDirectory(db)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, directory, auth.NewSessionStore(cfg.MaxLoginAttempts))
	h := handlers.Handlers{
		Auth:         authHandler,
		Registration: handlers.NewRegistrationHandler(directory),
		Catalog:      handlers.NewCatalogHandler(hotels, authHandler),
		Availability: handlers.NewAvailabilityHandler(resolver),
		Booking:      handlers.NewBookingHandler(ledger, receipts, newNotifier(cfg), authHandler),
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, h)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
