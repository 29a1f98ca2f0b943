package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("BOOKING_SERVICE_FEE", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 50.0, cfg.BookingServiceFee)
	assert.Equal(t, "07:00", cfg.ReminderAt)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("ALLOWED_ORIGINS", "https://clinic.example.com, ,https://admin.example.com")

	cfg := LoadConfig()

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, []string{"https://clinic.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}

func TestBadNumbersFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "smtp")
	t.Setenv("TOKEN_TTL", "a day")

	assert.Equal(t, 587, getInt("SMTP_PORT", 587))
	assert.Equal(t, time.Hour, getDuration("TOKEN_TTL", time.Hour))
}

func TestConfigDBNeedsDSN(t *testing.T) {
	assert.Error(t, ConfigDB(&Config{}))
}

func TestValidateProductionSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADMIN_JWT_SECRET", "")
	t.Setenv("CLINIC_JWT_SECRET", "clinickey")
	t.Setenv("PATIENT_JWT_SECRET", "b7f1c0d9e2a4")

	err := LoadConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_JWT_SECRET")
	assert.Contains(t, err.Error(), "CLINIC_JWT_SECRET")
	assert.NotContains(t, err.Error(), "PATIENT_JWT_SECRET")

	t.Setenv("ADMIN_JWT_SECRET", "4a9e61f0c2d8")
	t.Setenv("CLINIC_JWT_SECRET", "e03b7d5c1f96")
	assert.NoError(t, LoadConfig().Validate())
}

func TestValidateAllowsDefaultsOutsideProduction(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ADMIN_JWT_SECRET", "")

	cfg := LoadConfig()
	assert.Equal(t, "adminkey", cfg.AdminJWTSecret)
	assert.NoError(t, cfg.Validate())
}
