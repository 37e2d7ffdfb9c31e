//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TokenFactory mints tokens signed with the application's JWT settings,
// skipping the SMS code round trip.
type TokenFactory struct {
	cfg config.JWTConfig
}

func NewTokenFactory(cfg config.JWTConfig) *TokenFactory {
	return &TokenFactory{cfg: cfg}
}

func (f *TokenFactory) service(t *testing.T, accessTTL time.Duration) *jwt.Service {
	t.Helper()
	refreshTTL, err := time.ParseDuration(f.cfg.RefreshTokenDuration)
	require.NoError(t, err)
	if accessTTL == 0 {
		accessTTL, err = time.ParseDuration(f.cfg.AccessTokenDuration)
		require.NoError(t, err)
	}
	return jwt.NewService(f.cfg.Secret, accessTTL, refreshTTL)
}

func (f *TokenFactory) Access(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := f.service(t, 0).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

func (f *TokenFactory) Refresh(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := f.service(t, 0).GenerateRefreshToken(userID, role)
	require.NoError(t, err)
	return token
}

// Expired returns an access token whose expiry is already in the past.
func (f *TokenFactory) Expired(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := f.service(t, -time.Minute).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}
