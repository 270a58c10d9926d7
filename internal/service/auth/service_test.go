package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authz "github.com/m04kA/SMC-SalonBooking/internal/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newService(t *testing.T) (*Service, *authz.Authorizer) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	authorizer := authz.NewAuthorizer("test-secret", time.Hour)
	svc := NewService(Credentials{Email: "admin@salon.test", PasswordHash: string(hash)}, authorizer, logger.NewNop())
	return svc, authorizer
}

func TestService_LoginIssuesAdminToken(t *testing.T) {
	svc, authorizer := newService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: " Admin@Salon.test ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	principal, err := authorizer.RequireAdmin(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@salon.test", principal.Subject)
	assert.Equal(t, authz.RoleAdmin, principal.Role)
}

func TestService_LoginRejected(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "admin@salon.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "other@salon.test", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "admin@salon.test"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_LoginWithoutConfiguredAdmin(t *testing.T) {
	svc := NewService(Credentials{}, authz.NewAuthorizer("test-secret", time.Hour), logger.NewNop())

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "admin@salon.test", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
