package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, KeyPrefix))
	assert.Len(t, key, len(KeyPrefix)+keyRandomBytes*2)

	other, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestLookupPrefix(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"generated key", "lib_0123456789abcdef", "lib_01234567"},
		{"exact prefix length", "lib_01234567", ""},
		{"short", "abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LookupPrefix(tt.key))
		})
	}
}

func TestHashAndCheckKey(t *testing.T) {
	hash, err := HashKey("lib_secret-value", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "lib_secret-value", hash)

	assert.NoError(t, CheckKey("lib_secret-value", hash))
	assert.ErrorIs(t, CheckKey("lib_other-value", hash), ErrKeyMismatch)
}

func TestCheckKey_MalformedHash(t *testing.T) {
	err := CheckKey("lib_secret-value", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyMismatch)
}
