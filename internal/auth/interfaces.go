package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cinehub/booking-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// The production implementation is PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID uuid.UUID, role user.Role, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository defines the credential store operations the auth layer needs.
// Implemented by user.Repository on Postgres.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string, role user.Role) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*user.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OTPRepository defines the storage for password-reset one-time codes.
// Implemented by RedisOTPRepository; codes expire via TTL.
type OTPRepository interface {
	Store(ctx context.Context, email, code string) error
	Exists(ctx context.Context, email, code string) (bool, error)
	DeleteAll(ctx context.Context, email string) error
}
