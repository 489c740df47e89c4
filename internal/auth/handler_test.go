package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehub/booking-api/internal/logging"
	"github.com/cinehub/booking-api/internal/user"
)

func newTestHandler(t *testing.T) (*Handler, *fakeUserRepo, *fakeOTPRepo) {
	t.Helper()
	svc, users, otps, _ := newTestService(t)
	return NewHandler(svc, logging.NewLogger(true)), users, otps
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandlerRegister(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, user.RoleCustomer, resp.User.Role)

	// The hash never serializes
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestHandlerRegister_DuplicateEmail(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seedUser(t, users, "taken@example.com", "password123", user.RoleCustomer)

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"name":"Bob","email":"taken@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, rec.Body.String())
}

func TestHandlerRegister_ValidationMessages(t *testing.T) {
	h, _, _ := newTestHandler(t)

	cases := []struct {
		body    string
		message string
	}{
		{`{"email":"a@example.com","password":"password123"}`, "name is required"},
		{`{"name":"A","password":"password123"}`, "email is required"},
		{`{"name":"A","email":"bad","password":"password123"}`, "invalid email format"},
		{`{"name":"A","email":"a@example.com"}`, "password is required"},
		{`not json`, "Invalid request body"},
	}

	for _, tc := range cases {
		rec := postJSON(t, h.Register, "/api/auth/register", tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", tc.body)
		assert.JSONEq(t, `{"message":"`+tc.message+`"}`, rec.Body.String())
	}
}

func TestHandlerLogin(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
}

func TestHandlerLogin_InvalidCredentials(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)

	for _, body := range []string{
		`{"email":"ghost@example.com","password":"password123"}`,
		`{"email":"alice@example.com","password":"wrong-password"}`,
	} {
		rec := postJSON(t, h.Login, "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid email or password"}`, rec.Body.String())
	}
}

func TestHandlerAdminLogin(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seedUser(t, users, "customer@example.com", "password123", user.RoleCustomer)
	seedUser(t, users, "admin@example.com", "password123", user.RoleAdmin)

	rec := postJSON(t, h.AdminLogin, "/api/auth/adminlogin",
		`{"email":"customer@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Admin access required"}`, rec.Body.String())

	rec = postJSON(t, h.AdminLogin, "/api/auth/adminlogin",
		`{"email":"admin@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerUpdateProfile(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seeded := seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile",
		strings.NewReader(`{"name":"New Name"}`))
	req = req.WithContext(context.WithValue(req.Context(), UserIDContextKey, seeded.ID))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "New Name", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestHandlerUpdateProfile_NoContext(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(t, h.UpdateProfile, "/api/auth/profile", `{"name":"X"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerChangePassword(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seeded := seedUser(t, users, "alice@example.com", "oldpassword", user.RoleCustomer)

	do := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), UserIDContextKey, seeded.ID))
		rec := httptest.NewRecorder()
		h.ChangePassword(rec, req)
		return rec
	}

	rec := do(`{"currentPassword":"wrong","newPassword":"newpassword"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Current password is incorrect"}`, rec.Body.String())

	rec = do(`{"currentPassword":"oldpassword","newPassword":"newpassword"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Password changed successfully"}`, rec.Body.String())
}

func TestHandlerDeleteAccount(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seeded := seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)

	req := httptest.NewRequest(http.MethodDelete, "/api/auth/profile", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDContextKey, seeded.ID))
	rec := httptest.NewRecorder()
	h.DeleteAccount(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Account deleted successfully"}`, rec.Body.String())

	// Second delete finds nothing
	rec = httptest.NewRecorder()
	h.DeleteAccount(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestHandlerListUsers(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)
	seedUser(t, users, "admin@example.com", "password123", user.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/users", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Users, 2)

	// No hash material leaks through the listing
	assert.NotContains(t, rec.Body.String(), "argon2id")
}

func TestHandlerSendOTP(t *testing.T) {
	h, users, _ := newTestHandler(t)
	seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)

	rec := postJSON(t, h.SendOTP, "/api/password/send-otp", `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"OTP sent to your email"}`, rec.Body.String())

	rec = postJSON(t, h.SendOTP, "/api/password/send-otp", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestHandlerVerifyOTP(t *testing.T) {
	h, users, otps := newTestHandler(t)
	seedUser(t, users, "alice@example.com", "password123", user.RoleCustomer)
	require.NoError(t, otps.Store(context.Background(), "alice@example.com", "123456"))

	rec := postJSON(t, h.VerifyOTP, "/api/password/verify-otp",
		`{"email":"alice@example.com","otp":"123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"OTP verified successfully"}`, rec.Body.String())

	rec = postJSON(t, h.VerifyOTP, "/api/password/verify-otp",
		`{"email":"alice@example.com","otp":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid or expired OTP"}`, rec.Body.String())
}

func TestHandlerResetPassword(t *testing.T) {
	h, users, otps := newTestHandler(t)
	seedUser(t, users, "alice@example.com", "oldpassword", user.RoleCustomer)
	require.NoError(t, otps.Store(context.Background(), "alice@example.com", "123456"))

	rec := postJSON(t, h.ResetPassword, "/api/password/reset-password",
		`{"email":"alice@example.com","newPassword":"brand-new-password"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Password reset successfully"}`, rec.Body.String())

	assert.Empty(t, otps.live("alice@example.com"))

	rec = postJSON(t, h.ResetPassword, "/api/password/reset-password",
		`{"email":"ghost@example.com","newPassword":"brand-new-password"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
