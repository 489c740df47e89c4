package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cinehub/booking-api/internal/httputil"
	"github.com/cinehub/booking-api/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserIDContextKey ContextKey = "user_id"
	UserContextKey   ContextKey = "user"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
	users        UserRepository
}

func NewMiddleware(tokenService TokenService, users UserRepository) *Middleware {
	return &Middleware{
		tokenService: tokenService,
		users:        users,
	}
}

// RequireAuth validates the bearer token, resolves the user behind it, and
// attaches both id and user to the request context. A token whose user has
// been deleted since issuance is rejected.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httputil.RespondError(w, "Access denied. No token provided.", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			httputil.RespondError(w, "Invalid token", http.StatusForbidden)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			httputil.RespondError(w, "Invalid token", http.StatusForbidden)
			return
		}

		resolved, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				httputil.RespondError(w, "User not found", http.StatusUnauthorized)
				return
			}
			httputil.RespondError(w, "Failed to authenticate", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		ctx = context.WithValue(ctx, UserContextKey, resolved)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin enforces the admin role. Must run after RequireAuth.
// The role is read from the freshly resolved user, not from the token,
// so demotions take effect on the next request.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved, ok := GetUserFromContext(r.Context())
		if !ok {
			httputil.RespondError(w, "Access denied. No token provided.", http.StatusUnauthorized)
			return
		}

		if !resolved.IsAdmin() {
			httputil.RespondError(w, "Admin access required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext extracts the authenticated user's ID from the context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetUserFromContext extracts the resolved user from the context
func GetUserFromContext(ctx context.Context) (*user.User, bool) {
	resolved, ok := ctx.Value(UserContextKey).(*user.User)
	return resolved, ok
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
