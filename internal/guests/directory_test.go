package guests

import (
	"context"
	"errors"
	"testing"

	"github.com/gdg-garage/hotel-reservation-api/internal/database"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

func newDirectory(t *testing.T) *Directory {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewDirectory(db)
}

func registration(username, email string) Registration {
	return Registration{
		GuestDetails: GuestDetails{
			Firstname: "Anna",
			Lastname:  "Muster",
			Email:     email,
			Address:   models.Address{Street: "Bahnhofstrasse 1", Zip: "8001", City: "Zürich"},
		},
		Username: username,
		Password: "s3cret",
	}
}

func TestRegister(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	guest, err := d.Register(ctx, registration("anna", " Anna@Example.com "))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if guest.LoginID == nil {
		t.Fatal("expected guest to be linked to a login")
	}
	if guest.Email != "anna@example.com" {
		t.Errorf("expected normalised email, got %q", guest.Email)
	}

	loaded, err := d.GuestByLogin(ctx, *guest.LoginID)
	if err != nil {
		t.Fatalf("GuestByLogin returned error: %v", err)
	}
	if loaded.ID != guest.ID || loaded.Login == nil || loaded.Login.Role.Name != models.RoleGuest {
		t.Errorf("unexpected guest: %+v", loaded)
	}
	if loaded.Login.PasswordHash == "s3cret" {
		t.Error("password must not be stored in plain text")
	}

	t.Run("DuplicateUsername", func(t *testing.T) {
		if _, err := d.Register(ctx, registration("anna", "other@example.com")); !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("expected ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		if _, err := d.Register(ctx, registration("anna2", "anna@example.com")); !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("expected ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		r := registration("", "x@example.com")
		if _, err := d.Register(ctx, r); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("AnonymousGuestWithSameEmail", func(t *testing.T) {
		// Anonymous bookings do not reserve an email address.
		guest := GuestDetails{Firstname: "Beat", Email: "beat@example.com"}.Model()
		if err := d.db.Create(&guest).Error; err != nil {
			t.Fatalf("failed to create guest: %v", err)
		}
		if _, err := d.Register(ctx, registration("beat", "beat@example.com")); err != nil {
			t.Errorf("Register returned error: %v", err)
		}
	})
}

func TestVerifyCredentials(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()
	if _, err := d.Register(ctx, registration("anna", "anna@example.com")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	login, err := d.VerifyCredentials(ctx, "anna", "s3cret")
	if err != nil {
		t.Fatalf("VerifyCredentials returned error: %v", err)
	}
	if login.Username != "anna" || login.Role.AccessLevel != 1 {
		t.Errorf("unexpected login: %+v", login)
	}

	if _, err := d.VerifyCredentials(ctx, "anna", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := d.VerifyCredentials(ctx, "nobody", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestGuest(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	guest := GuestDetails{Firstname: " Beat ", Lastname: "Keller", Email: " Beat@Example.com "}.Model()
	if err := d.db.Create(&guest).Error; err != nil {
		t.Fatalf("failed to create guest: %v", err)
	}
	if guest.LoginID != nil {
		t.Error("anonymous guest must not have a login")
	}

	loaded, err := d.Guest(ctx, guest.ID)
	if err != nil {
		t.Fatalf("Guest returned error: %v", err)
	}
	if loaded.Firstname != "Beat" || loaded.Email != "beat@example.com" {
		t.Errorf("expected normalised details, got %q <%s>", loaded.Firstname, loaded.Email)
	}

	if _, err := d.Guest(ctx, 9999); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("expected ErrGuestNotFound, got %v", err)
	}
	if _, err := d.GuestByLogin(ctx, 9999); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("expected ErrGuestNotFound, got %v", err)
	}
}
