package database

import (
	"context"
	"embed"
	"fmt"

	"storefront-admin/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) { l.log.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...any) { l.log.Fatalf(format, v...) }

// Migrate applies every pending migration embedded under migrations/. It
// opens its own short-lived database/sql handle since goose does not speak
// pgxpool.
func Migrate(ctx context.Context, config utils.DatabaseConfig, logger *zap.Logger) error {
	connConfig, err := pgx.ParseConfig(connString(config))
	if err != nil {
		return fmt.Errorf("parse migration config: %w", err)
	}

	db := stdlib.OpenDB(*connConfig)
	defer db.Close()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: logger.Named("migrate").Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info("Database schema up to date", zap.Int64("version", version))

	return nil
}
