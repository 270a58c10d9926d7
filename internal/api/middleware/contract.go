package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/auth"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPMetrics интерфейс учета HTTP запросов
type HTTPMetrics interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Authorizer интерфейс проверки прав администратора
type Authorizer interface {
	RequireAdmin(ctx context.Context, credential string) (*auth.Principal, error)
}
