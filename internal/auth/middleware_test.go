package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTMiddleware_SlidingSession(t *testing.T) {
	h := newAuthHandler(t)

	resp, err := login(t, h, "", "anna", "pw")
	if err != nil {
		t.Fatalf("HandleLogin failed: %v", err)
	}
	sid := ""
	for _, c := range resp.SetCookie {
		if c.Name == SessionCookie {
			sid = c.Value
		}
	}

	tokenExpiringIn := func(d time.Duration) string {
		claims := jwt.MapClaims{
			"sid":      sid,
			"login_id": resp.Body.LoginID,
			"guest_id": resp.Body.GuestID,
			"username": resp.Body.Username,
			"level":    resp.Body.AccessLevel,
			"exp":      time.Now().Add(d).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(h.cfg.JWTSecret))
		return tokenString
	}

	serve := func(tokenString string) (*httptest.ResponseRecorder, Principal) {
		req, _ := http.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tokenString})
		rr := httptest.NewRecorder()

		var seen Principal
		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = PrincipalFrom(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		h.JWTMiddleware(nextHandler).ServeHTTP(rr, req)
		return rr, seen
	}

	t.Run("TokenRenewed", func(t *testing.T) {
		// Expires in 11 hours, less than TokenDuration/2.
		tokenString := tokenExpiringIn(11 * time.Hour)
		rr, p := serve(tokenString)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}
		if p.Username != "anna" {
			t.Errorf("expected principal in context, got %+v", p)
		}

		found := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == TokenCookie {
				found = true
				if c.Value == tokenString {
					t.Errorf("expected new token value, but got the old one")
				}
			}
		}
		if !found {
			t.Errorf("expected new auth_token cookie to be set")
		}
	})

	t.Run("TokenNotRenewed", func(t *testing.T) {
		rr, _ := serve(tokenExpiringIn(13 * time.Hour))

		if rr.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", rr.Code)
		}
		for _, c := range rr.Result().Cookies() {
			if c.Name == TokenCookie {
				t.Errorf("did not expect a new auth_token cookie to be set")
			}
		}
	})

	t.Run("NoToken", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()
		h.JWTMiddleware(http.NotFoundHandler()).ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %v", rr.Code)
		}
	})

	t.Run("SessionLoggedOut", func(t *testing.T) {
		session, _ := h.sessions.Lookup(sid)
		session.Logout()

		rr, _ := serve(tokenExpiringIn(13 * time.Hour))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 after logout, got %v", rr.Code)
		}
	})
}
