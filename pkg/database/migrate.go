package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pocket_ledger/internal/repositories/database/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Migrator wraps a migrate instance over the embedded schema.
type Migrator struct {
	db *sql.DB
	m  *migrate.Migrate
}

// NewMigrator opens a dedicated database/sql connection through the pgx stdlib
// driver and binds it to the embedded migrations.
func NewMigrator(databaseURL string) (*Migrator, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create postgres driver instance: %w", err)
	}
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return &Migrator{db: db, m: m}, nil
}

// Up applies all pending migrations. It reports whether anything changed.
func (mg *Migrator) Up() (bool, error) {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return true, nil
}

// Down rolls back every migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version and dirty flag.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the migration source and connection.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	closeErr := mg.db.Close()
	return errors.Join(sourceErr, dbErr, closeErr)
}

// RunMigrations applies pending migrations and logs the outcome.
func RunMigrations(databaseURL string, logger *slog.Logger) error {
	mg, err := NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := mg.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	changed, err := mg.Up()
	if err != nil {
		return err
	}
	if changed {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}
