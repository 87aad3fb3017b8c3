// Taseroncum | 2026
// jwt_test.go

package auth_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/config"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/middleware"
)

func newTestManager(t *testing.T, accessExpire time.Duration) *auth.JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt_private.pem")
	publicPath := filepath.Join(dir, "jwt_public.pem")

	require.NoError(t, auth.GenerateKeyPair(privatePath, publicPath))

	manager, err := auth.NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privatePath,
		PublicKeyPath:      publicPath,
		AccessTokenExpire:  accessExpire,
		RefreshTokenExpire: 720 * time.Hour,
		Issuer:             "taseroncum-test",
		Audience:           "taseroncum-api",
	})
	require.NoError(t, err)

	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, 15*time.Minute)

	claims := middleware.AccessTokenClaims{
		UserID:           "user-1",
		Role:             "FIRMA",
		CompanyProfileID: "company-1",
		TokenVersion:     3,
	}

	token, err := manager.CreateAccessToken(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.VerifyAccessToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, claims.UserID, got.UserID)
	require.Equal(t, claims.Role, got.Role)
	require.Equal(t, claims.CompanyProfileID, got.CompanyProfileID)
	require.Empty(t, got.ContractorProfileID)
	require.Equal(t, claims.TokenVersion, got.TokenVersion)
}

func TestExpiredTokenRejected(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, -time.Minute)

	token, err := manager.CreateAccessToken(middleware.AccessTokenClaims{
		UserID: "user-1",
		Role:   "TASERON",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(ctx, token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestTamperedTokenRejected(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t, 15*time.Minute)

	token, err := manager.CreateAccessToken(middleware.AccessTokenClaims{
		UserID: "user-1",
		Role:   "FIRMA",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(ctx, token+"x")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenFromAnotherKeyRejected(t *testing.T) {
	ctx := context.Background()
	signer := newTestManager(t, 15*time.Minute)
	verifier := newTestManager(t, 15*time.Minute)

	token, err := signer.CreateAccessToken(middleware.AccessTokenClaims{
		UserID: "user-1",
		Role:   "FIRMA",
	})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(ctx, token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}
