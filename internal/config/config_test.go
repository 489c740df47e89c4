package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasetoKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "booking", cfg.Database.DBName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, []byte(testPasetoKey), cfg.Auth.TokenKey)
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASETO_KEY")
}

func TestLoad_ShortKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("ACCESS_TOKEN_DURATION", "3600")
	t.Setenv("OTP_TTL", "300")
	t.Setenv("TRUSTED_ORIGINS", "https://booking.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t,
		[]string{"https://booking.example.com", "https://admin.example.com"},
		cfg.Server.TrustedOrigins,
	)
}

func TestLoad_BadNumericEnvFallsBack(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)
	t.Setenv("ACCESS_TOKEN_DURATION", "not-a-number")
	t.Setenv("REDIS_DB", "also-not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		DBName:   "booking",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=booking sslmode=disable",
		c.ConnectionString(),
	)
}
