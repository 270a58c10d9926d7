package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

var (
	// ErrMigrate ошибка применения миграций
	ErrMigrate = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose для встроенных миграций
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	dir    string
	logger Logger
}

// New создаёт мигратор. fsys содержит *.sql файлы в каталоге dir.
func New(db *sql.DB, fsys fs.FS, dir string, logger Logger) *Migrator {
	return &Migrator{
		db:     db,
		fsys:   fsys,
		dir:    dir,
		logger: logger,
	}
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: set dialect: %v", ErrMigrate, err)
	}

	m.logger.Info("Migrator: applying database migrations...")
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("%w: get version: %v", ErrMigrate, err)
	}
	m.logger.Info("Migrator: migrations applied, version=%d", version)

	return nil
}
