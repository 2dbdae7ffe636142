package database

import (
	"fmt"
	"log"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	ExampleData   bool
}

// Seed is idempotent: roles are ensured, the admin login and the example
// hotels are only created when missing.
func Seed(db *gorm.DB, opts SeedOptions) error {
	if err := EnsureRoles(db); err != nil {
		return err
	}

	if opts.AdminUsername != "" && opts.AdminPassword != "" {
		if err := seedAdmin(db, opts.AdminUsername, opts.AdminPassword); err != nil {
			return err
		}
	}

	if opts.ExampleData {
		if err := seedHotels(db); err != nil {
			return err
		}
	}

	return nil
}

func EnsureRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleGuest, AccessLevel: 1},
		{Name: models.RoleAdmin, AccessLevel: models.AdminAccessLevel},
	}
	for _, role := range roles {
		var existing models.Role
		if err := db.Where(models.Role{Name: role.Name}).Attrs(role).FirstOrCreate(&existing).Error; err != nil {
			return fmt.Errorf("ensure role %s: %w", role.Name, err)
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.Login{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin login: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
			return err
		}

		login := models.Login{Username: username, PasswordHash: string(hash), RoleID: role.ID}
		if err := tx.Create(&login).Error; err != nil {
			return err
		}

		admin := models.Guest{Firstname: "Hotel", Lastname: "Administrator", LoginID: &login.ID}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		log.Printf("Seeded administrator login %q", username)
		return nil
	})
}

func seedHotels(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Hotel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check example hotels: %w", err)
	}
	if count > 0 {
		return nil
	}

	hotels := []models.Hotel{
		{
			Name: "Hotel Baur au Lac", Stars: 5,
			Address: models.Address{Street: "Talstrasse 1", Zip: "8001", City: "Zürich"},
			Rooms: []models.Room{
				{Number: "101", Type: "Single", Capacity: 1, Price: 250, Description: "Einzelzimmer mit Seesicht"},
				{Number: "102", Type: "Double", Capacity: 2, Price: 400, Description: "Doppelzimmer", Amenities: []string{"wifi", "minibar"}},
				{Number: "201", Type: "Suite", Capacity: 4, Price: 950, Description: "Suite", Amenities: []string{"wifi", "minibar", "balcony"}},
			},
		},
		{
			Name: "Hotel Bellevue Palace", Stars: 5,
			Address: models.Address{Street: "Kochergasse 3-5", Zip: "3011", City: "Bern"},
			Rooms: []models.Room{
				{Number: "01", Type: "Double", Capacity: 2, Price: 320, Description: "Doppelzimmer"},
				{Number: "02", Type: "Family", Capacity: 4, Price: 480, Description: "Familienzimmer"},
			},
		},
		{
			Name: "Hotel Krafft", Stars: 3,
			Address: models.Address{Street: "Rheingasse 12", Zip: "4058", City: "Basel"},
			Rooms: []models.Room{
				{Number: "11", Type: "Single", Capacity: 1, Price: 130, Description: "Einzelzimmer"},
				{Number: "12", Type: "Double", Capacity: 2, Price: 180, Description: "Doppelzimmer am Rhein"},
			},
		},
	}

	if err := db.Create(&hotels).Error; err != nil {
		return fmt.Errorf("seed hotels: %w", err)
	}
	log.Printf("Seeded %d example hotels", len(hotels))
	return nil
}
