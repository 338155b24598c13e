package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nutricare", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "patients.db", cfg.Database.URL)
	assert.False(t, cfg.Database.IsPostgres())
	assert.Empty(t, cfg.Telegram.Token)
	assert.Equal(t, 60, cfg.Telegram.PollTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://nutricare:secret@db:5432/nutricare")
	t.Setenv("TELEGRAM_TOKEN", "123456:abcdef")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("LOG_OUTPUT", "nutricare.log")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://clinic.example.org, https://admin.example.org")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.IsPostgres())
	assert.Equal(t, "123456:abcdef", cfg.Telegram.Token)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "nutricare.log", cfg.Log.OutputPath)
	assert.Equal(t, []string{"https://clinic.example.org", "https://admin.example.org"}, cfg.CORS.AllowedOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("TRACING_SAMPLE_RATE", "lots")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")

	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "patients.db")
	t.Setenv("TRACING_SAMPLE_RATE", "1.5")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRACING_SAMPLE_RATE")
}

func TestIsPostgres(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "patients.db", want: false},
		{url: "/var/lib/nutricare/patients.db", want: false},
		{url: "postgres://u:p@localhost:5432/nutricare", want: true},
		{url: "postgresql://u:p@localhost:5432/nutricare", want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DatabaseConfig{URL: tt.url}.IsPostgres(), tt.url)
	}
}
