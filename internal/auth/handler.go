package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinehub/booking-api/internal/httputil"
	"github.com/cinehub/booking-api/internal/logging"
	"github.com/cinehub/booking-api/internal/user"
)

// Handler contains HTTP handlers for authentication and account endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the profile update request body.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest represents the password change request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// SendOTPRequest represents the send-otp request body
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents the verify-otp request body
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest represents the reset-password request body
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// AuthResponse is returned by register and the login endpoints
type AuthResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    *user.User `json:"user"`
}

// ProfileResponse is returned by profile mutations
type ProfileResponse struct {
	Success bool       `json:"success"`
	User    *user.User `json:"user"`
}

// UsersResponse is returned by the admin user listing
type UsersResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Users   []*user.User `json:"users"`
}

// StatusResponse is returned by endpoints without a payload
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a customer account and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration fields"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error or duplicate email"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	newUser, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email taken", "email", req.Email)
			httputil.RespondError(w, "User already exists", http.StatusBadRequest)
			return
		}
		if isValidationError(err) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("registration failed", "error", err.Error())
		httputil.RespondError(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	logger.Info("user registered", "user_id", newUser.ID)

	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Token:   token,
		User:    newUser,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	existing, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials", "email", req.Email)
			httputil.RespondError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		logger.Error("login failed", "error", err.Error())
		httputil.RespondError(w, "Failed to login", http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in", "user_id", existing.ID)

	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Token:   token,
		User:    existing,
	}, http.StatusOK)
}

// AdminLogin handles admin login
// @Summary      Admin login
// @Description  Same as login, additionally requires the admin role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      403 {object} httputil.ErrorResponse "Not an admin"
// @Router       /api/auth/adminlogin [post]
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	existing, token, err := h.service.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("admin login failed: invalid credentials", "email", req.Email)
			httputil.RespondError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrAdminRequired) {
			logger.Warn("admin login failed: not an admin", "email", req.Email)
			httputil.RespondError(w, "Admin access required", http.StatusForbidden)
			return
		}
		logger.Error("admin login failed", "error", err.Error())
		httputil.RespondError(w, "Failed to login", http.StatusInternalServerError)
		return
	}

	logger.Info("admin logged in", "user_id", existing.ID)

	httputil.RespondJSON(w, AuthResponse{
		Success: true,
		Token:   token,
		User:    existing,
	}, http.StatusOK)
}

// UpdateProfile handles profile updates for the authenticated user
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200 {object} ProfileResponse
// @Failure      400 {object} httputil.ErrorResponse "Email already in use"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/auth/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrEmailInUse) {
			httputil.RespondError(w, "Email already in use", http.StatusBadRequest)
			return
		}
		if isValidationError(err) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("profile update failed", "error", err.Error())
		httputil.RespondError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "user_id", userID)

	httputil.RespondJSON(w, ProfileResponse{
		Success: true,
		User:    updated,
	}, http.StatusOK)
}

// ChangePassword handles password changes for the authenticated user
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Current and new password"
// @Success      200 {object} StatusResponse
// @Failure      401 {object} httputil.ErrorResponse "Wrong current password"
// @Router       /api/auth/change-password [put]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrWrongPassword) {
			logger.Warn("password change failed: wrong current password", "user_id", userID)
			httputil.RespondError(w, "Current password is incorrect", http.StatusUnauthorized)
			return
		}
		if isValidationError(err) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("password change failed", "error", err.Error())
		httputil.RespondError(w, "Failed to change password", http.StatusInternalServerError)
		return
	}

	logger.Info("password changed", "user_id", userID)

	httputil.RespondJSON(w, StatusResponse{
		Success: true,
		Message: "Password changed successfully",
	}, http.StatusOK)
}

// DeleteAccount handles account deletion for the authenticated user
// @Summary      Delete account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} StatusResponse
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/auth/profile [delete]
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, "Access denied. No token provided.", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("account deletion failed", "error", err.Error())
		httputil.RespondError(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	logger.Info("account deleted", "user_id", userID)

	httputil.RespondJSON(w, StatusResponse{
		Success: true,
		Message: "Account deleted successfully",
	}, http.StatusOK)
}

// ListUsers returns all users; password hashes never serialize
// @Summary      List users
// @Description  Admin-only listing of all accounts
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UsersResponse
// @Failure      403 {object} httputil.ErrorResponse "Admin access required"
// @Router       /api/auth/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		logger.Error("user listing failed", "error", err.Error())
		httputil.RespondError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, UsersResponse{
		Success: true,
		Count:   len(users),
		Users:   users,
	}, http.StatusOK)
}

// SendOTP handles password-reset code requests
// @Summary      Send password reset OTP
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request body SendOTPRequest true "Account email"
// @Success      200 {object} StatusResponse
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/password/send-otp [post]
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SendPasswordResetOTP(r.Context(), req.Email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		logger.Error("otp send failed", "error", err.Error())
		httputil.RespondError(w, "Failed to send OTP", http.StatusInternalServerError)
		return
	}

	logger.Info("otp sent", "email", req.Email)

	httputil.RespondJSON(w, StatusResponse{
		Success: true,
		Message: "OTP sent to your email",
	}, http.StatusOK)
}

// VerifyOTP handles password-reset code verification
// @Summary      Verify password reset OTP
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request body VerifyOTPRequest true "Email and code"
// @Success      200 {object} StatusResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid or expired OTP"
// @Router       /api/password/verify-otp [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.VerifyPasswordResetOTP(r.Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, ErrInvalidOTP) {
			logger.Warn("otp verification failed", "email", req.Email)
			httputil.RespondError(w, "Invalid or expired OTP", http.StatusBadRequest)
			return
		}
		logger.Error("otp verification failed", "error", err.Error())
		httputil.RespondError(w, "Failed to verify OTP", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, StatusResponse{
		Success: true,
		Message: "OTP verified successfully",
	}, http.StatusOK)
}

// ResetPassword applies a new password after the OTP flow
// @Summary      Reset password
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Email and new password"
// @Success      200 {object} StatusResponse
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/password/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondError(w, "User not found", http.StatusNotFound)
			return
		}
		if isValidationError(err) {
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("password reset failed", "error", err.Error())
		httputil.RespondError(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}

	logger.Info("password reset", "email", req.Email)

	httputil.RespondJSON(w, StatusResponse{
		Success: true,
		Message: "Password reset successfully",
	}, http.StatusOK)
}

// isValidationError reports whether err maps to a 400 with its own message
func isValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrInvalidEmailFormat)
}
