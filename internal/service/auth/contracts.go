package auth

import "time"

// TokenIssuer интерфейс выпуска токенов администратора
type TokenIssuer interface {
	IssueToken(subject string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
