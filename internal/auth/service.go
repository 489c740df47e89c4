package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/cinehub/booking-api/internal/logging"
	"github.com/cinehub/booking-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminRequired      = errors.New("admin access required")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendPasswordResetOTP(ctx context.Context, toEmail, name, otp string) error
}

// Service handles authentication and account business logic
type Service struct {
	users         UserRepository
	otps          OTPRepository
	tokenService  TokenService
	emailService  EmailService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(
	users UserRepository,
	otps OTPRepository,
	tokenService TokenService,
	emailService EmailService,
	logger *logging.Logger,
	tokenDuration time.Duration,
) *Service {
	return &Service{
		users:         users,
		otps:          otps,
		tokenService:  tokenService,
		emailService:  emailService,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register creates a new customer account and issues a token for it
func (s *Service) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	if name == "" {
		return nil, "", ErrNameRequired
	}
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	// Pre-check duplicate email; the unique index on users.email is the
	// backstop for the race between concurrent registrations
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", user.ErrDuplicateEmail
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, name, email, passwordHash, user.RoleCustomer)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", user.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenService.CreateToken(newUser.ID, newUser.Role, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return newUser, token, nil
}

// Login authenticates a user and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existing.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(existing.ID, existing.Role, s.tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	return existing, token, nil
}

// AdminLogin behaves like Login and additionally requires the admin role.
// Credentials are checked first so the role gate reveals nothing about
// accounts with bad credentials.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*user.User, string, error) {
	existing, token, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	if !existing.IsAdmin() {
		return nil, "", ErrAdminRequired
	}

	return existing, token, nil
}

// UpdateProfile updates name and/or email of the authenticated user.
// Empty fields keep their current value.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*user.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}

	if email != current.Email {
		if err := validateEmail(email); err != nil {
			return nil, err
		}

		// Uniqueness pre-check excluding the current user
		if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID != id {
			return nil, ErrEmailInUse
		} else if err != nil && !errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	updated, err := s.users.UpdateProfile(ctx, id, name, email)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return updated, nil
}

// ChangePassword verifies the current password before storing the new one
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existing.PasswordHash, currentPassword) {
		return ErrWrongPassword
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, id, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes the authenticated user's record
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ListUsers returns all user accounts
func (s *Service) ListUsers(ctx context.Context) ([]*user.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// SendPasswordResetOTP generates a fresh 6-digit code, stores it, and mails
// it to the account holder. Repeated sends leave earlier codes valid.
func (s *Service) SendPasswordResetOTP(ctx context.Context, email string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := s.otps.Store(ctx, email, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	// Send in a goroutine so a slow SMTP server does not hold the request;
	// failures are logged, the code stays usable for a later resend
	name := existing.Name
	go func() {
		emailCtx := context.Background()
		if err := s.emailService.SendPasswordResetOTP(emailCtx, email, name, otp); err != nil {
			s.logger.Warn("failed to send otp email", "email", email, "error", err)
		}
	}()

	return nil
}

// VerifyPasswordResetOTP checks the email+code pair against the live codes.
// The code is not consumed; it stays valid until reset or expiry.
func (s *Service) VerifyPasswordResetOTP(ctx context.Context, email, otp string) error {
	ok, err := s.otps.Exists(ctx, email, otp)
	if err != nil {
		return fmt.Errorf("failed to check otp: %w", err)
	}
	if !ok {
		return ErrInvalidOTP
	}

	return nil
}

// ResetPassword stores a new password for the account and invalidates every
// outstanding code for the email
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, existing.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.otps.DeleteAll(ctx, email); err != nil {
		s.logger.Warn("failed to delete otps after reset", "email", email, "error", err)
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > 254 {
		return ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmailFormat
	}
	return nil
}

// validatePassword only rejects the empty string; password strength is the
// client's concern, and recovery must accept whatever login accepts
func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// generateOTP draws a uniformly random 6-digit code in [100000, 999999]
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
