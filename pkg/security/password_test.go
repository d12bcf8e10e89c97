package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength(""))
	assert.Error(t, ValidatePasswordStrength("12345"))
	assert.Error(t, ValidatePasswordStrength(strings.Repeat("a", 33)))
	assert.NoError(t, ValidatePasswordStrength("secret123"))
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, ValidateInput("rider_01"))
	assert.Error(t, ValidateInput("x' OR 1=1"))
	assert.Error(t, ValidateInput("union select password from app_user"))
}
