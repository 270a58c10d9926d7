package auth

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается, когда не переданы email или пароль
	ErrInvalidInput = fmt.Errorf("auth.service: email and password are required: %w", domain.ErrValidation)

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = fmt.Errorf("auth.service: invalid email or password: %w", domain.ErrUnauthorized)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
