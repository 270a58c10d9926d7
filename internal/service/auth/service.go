package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SalonBooking/internal/service/auth/models"
)

const tokenType = "Bearer"

// Credentials учетная запись администратора из конфигурации
type Credentials struct {
	Email        string
	PasswordHash string // bcrypt
}

// Service сервис входа администратора
type Service struct {
	credentials Credentials
	issuer      TokenIssuer
	logger      Logger
}

// NewService создает новый экземпляр сервиса входа
func NewService(credentials Credentials, issuer TokenIssuer, logger Logger) *Service {
	return &Service{
		credentials: credentials,
		issuer:      issuer,
		logger:      logger,
	}
}

// Login проверяет email и пароль и выпускает токен
func (s *Service) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidInput
	}

	if s.credentials.Email == "" || s.credentials.PasswordHash == "" {
		s.logger.Warn("Login: admin account is not configured")
		return nil, ErrInvalidCredentials
	}

	if !strings.EqualFold(email, s.credentials.Email) {
		s.logger.Warn("Login: unknown email %q", email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.credentials.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for %q", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.IssueToken(s.credentials.Email)
	if err != nil {
		s.logger.Error("Login: failed to issue token: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Login: issued token for %q, expires at %s", s.credentials.Email, expiresAt.Format("2006-01-02 15:04:05"))
	return &models.LoginResponse{AccessToken: token, TokenType: tokenType, ExpiresAt: expiresAt}, nil
}
