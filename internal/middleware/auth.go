// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
)

type UserContextKey string

var UserKey UserContextKey = "journal_user"

// UserLoader loads the account behind a validated token.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens and puts the
// active user on the request context
func AuthMiddleware(tokenManager *auth.TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "No authorization header")
				return
			}

			user, err := authenticate(r.Context(), tokenManager, users, authHeader)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth loads the user when a valid token is present and lets the
// request through anonymously otherwise.
func OptionalAuth(tokenManager *auth.TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				if user, err := authenticate(r.Context(), tokenManager, users, authHeader); err == nil {
					r = r.WithContext(WithUser(r.Context(), user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

var (
	errInvalidHeader = errors.New("Invalid authorization header")
	errInvalidToken  = errors.New("Invalid token")
)

func authenticate(ctx context.Context, tokenManager *auth.TokenManager, users UserLoader, header string) (*model.User, error) {
	// Check Bearer prefix
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errInvalidHeader
	}

	claims, err := tokenManager.Validate(parts[1])
	if err != nil {
		return nil, errInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errInvalidToken
	}

	user, err := users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errInvalidToken
		}
		return nil, err
	}
	if user.Status != model.StatusActive {
		return nil, errInvalidToken
	}
	return user, nil
}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
