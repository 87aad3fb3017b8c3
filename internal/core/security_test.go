// Taseroncum | 2026
// security_test.go

package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/core"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := core.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := core.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = core.VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := core.HashPassword("same password")
	require.NoError(t, err)

	second, err := core.HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := core.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	ok, _, err := core.VerifyPasswordTimingSafe("hunter2hunter2", &hash)
	require.NoError(t, err)
	require.True(t, ok)

	// A missing user verifies against the dummy hash and always fails.
	ok, _, err = core.VerifyPasswordTimingSafe("hunter2hunter2", nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTokenHashing(t *testing.T) {
	token, err := core.GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	hash := core.HashToken(token)
	require.NotEqual(t, token, hash)
	require.True(t, core.CompareTokenHash(token, hash))
	require.False(t, core.CompareTokenHash("other-token", hash))
}
