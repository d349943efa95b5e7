package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("longenough"))
	// Eight characters, more than eight bytes.
	assert.NoError(t, ValidatePassword("пароль12"))
	assert.ErrorIs(t, ValidatePassword("пароль1"), ErrPasswordTooShort)
}

func TestEmailHelpers(t *testing.T) {
	assert.True(t, ValidateEmail(" rev@example.com "))
	assert.False(t, ValidateEmail("rev@example"))
	assert.Equal(t, "rev@example.com", NormalizeEmail("  Rev@Example.COM "))
}

func TestSanitizeInputKeepsLineBreaks(t *testing.T) {
	assert.Equal(t, "line one\nline two", SanitizeInput("  line one\x00\nline two\x07  "))
	assert.Equal(t, "", SanitizeInput(" \x00 "))
}
