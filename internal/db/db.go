// Package db owns the store lifecycle: opening a connection, bringing
// the schema up to date, and seeding first-run defaults. The handle is
// constructed once in main and injected into repositories; nothing in
// this codebase reaches for it as ambient global state.
package db

import (
	"fmt"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the migration drivers and file source for
	// the optional SQL-migrations path.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stockpilot/backend/internal/config"
	"stockpilot/backend/internal/models"
)

// Open connects to the store named by the DSN. A postgres:// URL
// selects the postgres driver; anything else is treated as a sqlite
// path/URI, which is the default for the on-device deployment.
// TranslateError is always on so constraint violations surface as
// gorm.ErrDuplicatedKey / ErrForeignKeyViolated for classification.
func Open(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("empty database DSN")
	}
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// ConnectAndMigrate opens the store, verifies connectivity, brings the
// schema up to date, and seeds first-run defaults. If MIGRATIONS=1 the
// SQL files under ./migrations are applied via golang-migrate;
// otherwise AutoMigrate keeps dev setups current.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	conn, err := Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("store ping failed: %w", pingErr)
	}
	if config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := Migrate(conn); err != nil {
		return nil, err
	}
	if err := Seed(conn); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return conn, nil
}

// Migrate applies the gorm auto-migration for every entity.
func Migrate(conn *gorm.DB) error {
	entities := []any{
		&models.Category{}, &models.Item{}, &models.Customer{},
		&models.Invoice{}, &models.InvoiceItem{},
		&models.Transaction{}, &models.User{},
	}
	for _, e := range entities {
		if err := conn.AutoMigrate(e); err != nil {
			return fmt.Errorf("automigrate %T: %w", e, err)
		}
	}
	return nil
}

// Reset drops every entity table and rebuilds the schema with fresh
// seed data. Used by tests and tooling only.
func Reset(conn *gorm.DB) error {
	tables := []any{
		&models.User{}, &models.Transaction{}, &models.InvoiceItem{},
		&models.Invoice{}, &models.Customer{}, &models.Item{}, &models.Category{},
	}
	for _, t := range tables {
		if err := conn.Migrator().DropTable(t); err != nil {
			return fmt.Errorf("drop %T: %w", t, err)
		}
	}
	if err := Migrate(conn); err != nil {
		return err
	}
	return Seed(conn)
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	url := dsn
	lower := strings.ToLower(dsn)
	if !strings.HasPrefix(lower, "postgres://") && !strings.HasPrefix(lower, "postgresql://") {
		url = "sqlite3://" + strings.TrimPrefix(dsn, "file:")
	}
	m, err := migrate.New("file://migrations", url)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
