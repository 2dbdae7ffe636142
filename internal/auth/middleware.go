package auth

import (
	"context"
	"net/http"
	"time"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// PrincipalFrom returns the principal stored by JWTMiddleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(Principal)
	return p, ok
}

func (h *AuthHandler) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookie)
		if err != nil {
			if err == http.ErrNoCookie {
				http.Error(w, "Unauthorized: No token found", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		p, claims, err := h.principal(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		// Sliding session: refresh token if it's more than halfway through its duration
		if exp, ok := claims["exp"].(float64); ok {
			remaining := time.Until(time.Unix(int64(exp), 0))
			if remaining < TokenDuration/2 {
				sid, _ := claims["sid"].(string)
				newToken, err := h.GenerateToken(sid, p)
				if err == nil {
					c := tokenCookie(newToken, time.Now().Add(TokenDuration))
					http.SetCookie(w, &c)
				}
			}
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
