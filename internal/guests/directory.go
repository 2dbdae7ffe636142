// Package guests maps anonymous and registered guests to their accounts.
package guests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrGuestNotFound      = errors.New("guest not found")
	ErrDuplicateAccount   = errors.New("an account with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password are required")
)

type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

type GuestDetails struct {
	Firstname string
	Lastname  string
	Email     string
	Address   models.Address
}

// Model returns the guest record for d with names trimmed and the email
// normalised. It has no login, as used by anonymous checkout.
func (d GuestDetails) Model() models.Guest {
	return models.Guest{
		Firstname: strings.TrimSpace(d.Firstname),
		Lastname:  strings.TrimSpace(d.Lastname),
		Email:     strings.ToLower(strings.TrimSpace(d.Email)),
		Address:   d.Address,
	}
}

type Registration struct {
	GuestDetails
	Username string
	Password string
}

func (d *Directory) Register(ctx context.Context, r Registration) (*models.Guest, error) {
	username := strings.TrimSpace(r.Username)
	if username == "" || r.Password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	guest := r.GuestDetails.Model()
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Login{}).Where("username = ?", username).Count(&taken).Error; err != nil {
			return err
		}
		if taken == 0 && guest.Email != "" {
			err := tx.Model(&models.Guest{}).
				Where("email = ? AND login_id IS NOT NULL", guest.Email).
				Count(&taken).Error
			if err != nil {
				return err
			}
		}
		if taken > 0 {
			return ErrDuplicateAccount
		}

		var role models.Role
		if err := tx.Where(models.Role{Name: models.RoleGuest}).
			Attrs(models.Role{AccessLevel: 1}).
			FirstOrCreate(&role).Error; err != nil {
			return err
		}

		login := models.Login{Username: username, PasswordHash: string(hash), RoleID: role.ID}
		if err := tx.Create(&login).Error; err != nil {
			return err
		}

		guest.LoginID = &login.ID
		return tx.Create(&guest).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateAccount) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("register %s: %w", username, err)
	}
	return &guest, nil
}

func (d *Directory) Guest(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	err := d.db.WithContext(ctx).Preload("Login.Role").First(&guest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load guest %d: %w", id, err)
	}
	return &guest, nil
}

func (d *Directory) GuestByLogin(ctx context.Context, loginID uint) (*models.Guest, error) {
	var guest models.Guest
	err := d.db.WithContext(ctx).Preload("Login.Role").Where("login_id = ?", loginID).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load guest of login %d: %w", loginID, err)
	}
	return &guest, nil
}

// VerifyCredentials returns the login with its role when the password matches.
func (d *Directory) VerifyCredentials(ctx context.Context, username, password string) (*models.Login, error) {
	var login models.Login
	err := d.db.WithContext(ctx).Preload("Role").Where("username = ?", strings.TrimSpace(username)).First(&login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load login %s: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(login.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &login, nil
}
