package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// RoleAdmin роль администратора салона
const RoleAdmin = "admin"

var (
	// ErrMissingCredential токен не передан
	ErrMissingCredential = fmt.Errorf("auth: missing credential: %w", domain.ErrUnauthorized)

	// ErrInvalidCredential токен невалиден или истек
	ErrInvalidCredential = fmt.Errorf("auth: invalid credential: %w", domain.ErrUnauthorized)

	// ErrForbiddenRole токен валиден, но роль не admin
	ErrForbiddenRole = fmt.Errorf("auth: admin role required: %w", domain.ErrUnauthorized)

	// ErrSignToken ошибка подписи токена
	ErrSignToken = errors.New("auth: failed to sign token")
)

// Principal аутентифицированный администратор
type Principal struct {
	Subject string
	Role    string
}

// Claims полезная нагрузка токена
type Claims struct {
	Role string `json:"role"`
	jwtlib.RegisteredClaims
}

// Authorizer выпускает и проверяет HS256 токены администратора
type Authorizer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthorizer создает Authorizer
func NewAuthorizer(secret string, ttl time.Duration) *Authorizer {
	return &Authorizer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken выпускает токен администратора для subject
func (a *Authorizer) IssueToken(subject string) (string, time.Time, error) {
	issuedAt := a.now()
	expiresAt := issuedAt.Add(a.ttl)

	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(issuedAt),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSignToken, err)
	}

	return token, expiresAt, nil
}

// RequireAdmin проверяет, что credential - действующий токен администратора
func (a *Authorizer) RequireAdmin(_ context.Context, credential string) (*Principal, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}

	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(credential, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, jwtlib.ErrSignatureInvalid
		}
		return a.secret, nil
	}, jwtlib.WithTimeFunc(a.now), jwtlib.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredential
	}

	if claims.Role != RoleAdmin {
		return nil, ErrForbiddenRole
	}

	return &Principal{Subject: claims.Subject, Role: claims.Role}, nil
}
