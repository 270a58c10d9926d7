package auth

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestAuthorizer_IssueAndRequireAdmin(t *testing.T) {
	a := NewAuthorizer("secret", time.Hour)

	token, expiresAt, err := a.IssueToken("admin@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	principal, err := a.RequireAdmin(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", principal.Subject)
	assert.Equal(t, RoleAdmin, principal.Role)
}

func TestAuthorizer_RejectsBadCredentials(t *testing.T) {
	a := NewAuthorizer("secret", time.Hour)
	other := NewAuthorizer("other-secret", time.Hour)

	foreign, _, err := other.IssueToken("admin@example.com")
	require.NoError(t, err)

	expired := NewAuthorizer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.IssueToken("admin@example.com")
	require.NoError(t, err)

	nonAdmin, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		Role: "customer",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
		wantErr    error
	}{
		{"empty", "", ErrMissingCredential},
		{"garbage", "not-a-token", ErrInvalidCredential},
		{"foreign signature", foreign, ErrInvalidCredential},
		{"expired", stale, ErrInvalidCredential},
		{"not admin", nonAdmin, ErrForbiddenRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.RequireAdmin(context.Background(), tt.credential)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
