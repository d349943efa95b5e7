package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"pmo-review-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateValidation(t *testing.T) {
	pool, state := newScriptedPool(t)
	svc := NewUserService(pool)

	_, err := svc.Create(context.Background(), "not-an-email", "longenough", "A", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(context.Background(), "a@example.com", "short", "A", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(context.Background(), "a@example.com", "longenough", "A", "owner")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, state.statements())
}

func TestUserAuthenticate(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	now := time.Now()
	cols := []string{"id", "email", "password", "name", "role", "created_at", "updated_at"}
	row := []driver.Value{"u1", "rev@example.com", hash, "Rev", "reviewer", now, now}

	pool, _ := newScriptedPool(t,
		query("SELECT \\* FROM `users` WHERE email = \\?", cols, row),
		query("SELECT \\* FROM `users` WHERE email = \\?", cols, row),
		query("SELECT \\* FROM `users` WHERE email = \\?", cols),
	)
	svc := NewUserService(pool)

	user, err := svc.Authenticate(context.Background(), " Rev@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = svc.Authenticate(context.Background(), "rev@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "ghost@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
