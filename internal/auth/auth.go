package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/hotel-reservation-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenCookie   = "auth_token"
	SessionCookie = "session_id"
	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	cfg      *config.Config
	gate     *Gate
	accounts Accounts
	sessions *SessionStore
}

func NewAuthHandler(cfg *config.Config, accounts Accounts, sessions *SessionStore) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		gate:     NewGate(accounts),
		accounts: accounts,
		sessions: sessions,
	}
}

// AuthInput carries the raw Cookie header of a request.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"auth_token and session_id cookies"`
}

type LoginRequest struct {
	AuthInput
	Body struct {
		Username string `json:"username" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type PrincipalBody struct {
	Principal
	Class string `json:"class"`
}

type LoginResponse struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      struct {
		PrincipalBody
		AttemptsLeft int `json:"attempts_left"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	sid, session, created := h.sessions.Get(cookieValue(input.Cookie, SessionCookie))

	p, err := h.gate.Authenticate(ctx, session, input.Body.Username, input.Body.Password)
	if err != nil && created {
		// The client never learns the id of a session whose first login failed.
		h.sessions.Delete(sid)
	}
	switch {
	case errors.Is(err, ErrTooManyAttempts):
		return nil, huma.Error429TooManyRequests("Too many login attempts, log out to reset the session")
	case errors.Is(err, ErrInvalidCredentials):
		return nil, huma.Error401Unauthorized(fmt.Sprintf("Invalid credentials, %d attempt(s) left", session.AttemptsLeft()))
	case err != nil:
		log.Printf("Login of %s failed: %v", input.Body.Username, err)
		return nil, huma.Error500InternalServerError("Failed to authenticate")
	}

	token, err := h.GenerateToken(sid, p)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{}
	res.SetCookie = []http.Cookie{
		sessionCookie(sid),
		tokenCookie(token, time.Now().Add(TokenDuration)),
	}
	res.Body.Principal = p
	res.Body.Class = Classify(p).String()
	res.Body.AttemptsLeft = session.AttemptsLeft()
	return res, nil
}

type LogoutResponse struct {
	SetCookie []http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

// HandleLogout resets the session to anonymous and restores its attempts.
func (h *AuthHandler) HandleLogout(ctx context.Context, input *AuthInput) (*LogoutResponse, error) {
	if session, ok := h.sessions.Lookup(cookieValue(input.Cookie, SessionCookie)); ok {
		session.Logout()
	}

	res := &LogoutResponse{}
	res.SetCookie = []http.Cookie{tokenCookie("", time.Unix(0, 0))}
	res.Body.Message = "Logged out"
	return res, nil
}

type MeResponse struct {
	Body struct {
		PrincipalBody
		Firstname string `json:"firstname,omitempty"`
		Lastname  string `json:"lastname,omitempty"`
		Email     string `json:"email,omitempty"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeResponse, error) {
	p, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.Principal = p
	res.Body.Class = Classify(p).String()

	if p.GuestID != 0 {
		guest, err := h.accounts.GuestByLogin(ctx, p.LoginID)
		if err == nil {
			res.Body.Firstname = guest.Firstname
			res.Body.Lastname = guest.Lastname
			res.Body.Email = guest.Email
		}
	}
	return res, nil
}

// Authorize resolves the principal of a request from its auth_token cookie.
// The token is only valid while its session is still authenticated.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (Principal, error) {
	token := cookieValue(cookieHeader, TokenCookie)
	if token == "" {
		return Principal{}, huma.Error401Unauthorized("Unauthorized: No token found")
	}
	p, _, err := h.principal(token)
	if err != nil {
		return Principal{}, huma.Error401Unauthorized("Unauthorized: " + err.Error())
	}
	return p, nil
}

// OptionalPrincipal is Authorize for endpoints open to anonymous guests.
func (h *AuthHandler) OptionalPrincipal(ctx context.Context, cookieHeader string) (Principal, bool, error) {
	if cookieValue(cookieHeader, TokenCookie) == "" {
		return Principal{}, false, nil
	}
	p, err := h.Authorize(ctx, cookieHeader)
	if err != nil {
		return Principal{}, false, err
	}
	return p, true, nil
}

func (h *AuthHandler) GenerateToken(sessionID string, p Principal) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sessionID,
		"login_id": p.LoginID,
		"guest_id": p.GuestID,
		"username": p.Username,
		"level":    p.AccessLevel,
		"exp":      time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// principal validates a token against its session and returns the principal
// with the token claims.
func (h *AuthHandler) principal(tokenString string) (Principal, jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, nil, errors.New("invalid token claims")
	}

	loginID, ok := claims["login_id"].(float64)
	if !ok {
		return Principal{}, nil, errors.New("invalid token claims")
	}
	guestID, _ := claims["guest_id"].(float64)
	level, _ := claims["level"].(float64)
	username, _ := claims["username"].(string)
	sid, _ := claims["sid"].(string)

	session, ok := h.sessions.Lookup(sid)
	if !ok {
		return Principal{}, nil, errors.New("session expired")
	}
	current, ok := session.Principal()
	if !ok || current.LoginID != uint(loginID) {
		return Principal{}, nil, errors.New("session logged out")
	}

	return Principal{
		LoginID:     uint(loginID),
		GuestID:     uint(guestID),
		Username:    username,
		AccessLevel: int64(level),
	}, claims, nil
}

func cookieValue(header, name string) string {
	if header == "" {
		return ""
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func tokenCookie(value string, expires time.Time) http.Cookie {
	return http.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Expires:  expires,
		HttpOnly: true,
		Path:     "/",
	}
}

func sessionCookie(sid string) http.Cookie {
	return http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		HttpOnly: true,
		Path:     "/",
	}
}
