package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	mail "github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JWT_EXPIRE_HOURS", "")
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.JWTLifetime())
	assert.Empty(t, cfg.GeminiAPIKey())

	g := cfg.Gemini()
	assert.Equal(t, "gemini-2.5-flash", g.Model)
	assert.Equal(t, "v1", g.APIVersion)
	assert.Equal(t, 60*time.Second, g.Timeout)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("GEMINI_API_KEY", "  k1 ")
	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.JWTLifetime())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, "k1", cfg.GeminiAPIKey())

	// Rotated keys are visible without reloading.
	t.Setenv("GEMINI_API_KEY", "k2")
	assert.Equal(t, "k2", cfg.GeminiAPIKey())
}

func TestDSN(t *testing.T) {
	dsn := DBSettings{Host: "db", Port: "3306", Database: "pmo", Username: "u", Password: "p"}.DSN()
	assert.Equal(t, "u:p@tcp(db:3306)/pmo?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestDBPoolRetriesAfterFailure(t *testing.T) {
	calls := 0
	pool := &DBPool{open: func() (*gorm.DB, error) {
		calls++
		return nil, errors.New("dial tcp: connection refused")
	}}

	_, err := pool.Ensure(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to connect to database"))
	_, err = pool.Ensure(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, pool.Close())
}

func TestMailer(t *testing.T) {
	m := NewMailer(SMTPSettings{})
	assert.False(t, m.Configured())
	assert.NoError(t, m.SendMail(nil, "s", "<p>x</p>"))
	assert.ErrorIs(t, m.SendMail([]string{"a@example.com"}, "s", "<p>x</p>"), ErrMailerNotConfigured)

	m = NewMailer(SMTPSettings{Host: "smtp.example.com", From: "PMO <no-reply@example.com>"})
	var sent *mail.Message
	m.send = func(msg *mail.Message) error {
		sent = msg
		return nil
	}
	err := m.SendMail([]string{"a@example.com", "b@example.com"}, "Report", "<p>x</p>",
		Attachment{Name: "r.pdf", Data: []byte("%PDF-1.3")})
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Report"}, sent.GetHeader("Subject"))
}
