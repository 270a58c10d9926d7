package appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// TxManager выполняет функцию в транзакции, передавая её через контекст
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
