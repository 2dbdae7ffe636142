package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/hotel-reservation-api/internal/guests"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts; session locked")
)

type Accounts interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.Login, error)
	GuestByLogin(ctx context.Context, loginID uint) (*models.Guest, error)
}

type Gate struct {
	accounts Accounts
}

func NewGate(accounts Accounts) *Gate {
	return &Gate{accounts: accounts}
}

// Authenticate spends one attempt of the session on every call, whatever the
// outcome. The failure that spends the last attempt locks the session.
func (g *Gate) Authenticate(ctx context.Context, s *Session, username, password string) (Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLocked || s.attemptsLeft <= 0 {
		s.state = StateLocked
		return Principal{}, ErrTooManyAttempts
	}
	s.attemptsLeft--
	previous := s.state
	s.state = StateAuthenticating

	p, err := g.verify(ctx, username, password)
	if err != nil {
		switch {
		case s.attemptsLeft == 0:
			s.state = StateLocked
		case previous == StateAuthenticated:
			s.state = StateAuthenticated
		default:
			s.state = StateAnonymous
		}
		return Principal{}, err
	}

	s.state = StateAuthenticated
	s.principal = p
	return p, nil
}

func (g *Gate) verify(ctx context.Context, username, password string) (Principal, error) {
	login, err := g.accounts.VerifyCredentials(ctx, username, password)
	if errors.Is(err, guests.ErrInvalidCredentials) {
		return Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		return Principal{}, err
	}

	p := Principal{
		LoginID:     login.ID,
		Username:    login.Username,
		AccessLevel: login.Role.AccessLevel,
	}

	guest, err := g.accounts.GuestByLogin(ctx, login.ID)
	switch {
	case err == nil:
		p.GuestID = guest.ID
	case errors.Is(err, guests.ErrGuestNotFound):
		// administrators may exist without a guest record
	default:
		return Principal{}, fmt.Errorf("load guest of %s: %w", username, err)
	}
	return p, nil
}
