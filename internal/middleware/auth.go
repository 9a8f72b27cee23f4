package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/services"
)

// SessionCookie carries the session credential for browser clients.
const SessionCookie = "jwt"

type contextKey string

const userContextKey contextKey = "user"

// Authenticator resolves a session credential to its user. Implemented by
// services.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user stored by Authenticate.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok && user != nil
}

// TokenFromRequest reads the bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Authenticate rejects requests without a valid session and puts the user
// record on the request context.
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				services.SendErrorResponse(w, "Please login to gain access", http.StatusUnauthorized, nil)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, models.ErrUnauthorized) {
					log.Printf("[AUTH] session lookup failed: %v", err)
				}
				services.SendErrorResponse(w, "The user belonging to this token no longer exists or the session is invalid", http.StatusUnauthorized, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireActive lets confirmed users through. A user whose last second-factor
// attempt failed also passes, so an interrupted reset can be completed.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			services.SendErrorResponse(w, "Please login to gain access", http.StatusUnauthorized, nil)
			return
		}

		secondFactorFailed := user.TwoFactorAuth != nil && !*user.TwoFactorAuth
		if !user.Active && !secondFactorFailed {
			services.SendErrorResponse(w, models.ErrNotConfirmed.Error(), http.StatusUnauthorized, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSecondFactor blocks users with an unverified OTP challenge.
func RequireSecondFactor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			services.SendErrorResponse(w, "Please login to gain access", http.StatusUnauthorized, nil)
			return
		}

		if user.TwoFactorAuth != nil && !*user.TwoFactorAuth {
			services.SendErrorResponse(w, models.ErrSecondFactorRequired.Error(), http.StatusUnauthorized, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
