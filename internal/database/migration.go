// internal/database/migration.go
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"sik-configurator/migrations"
)

// Migrator applies the embedded profile schema migrations. It opens its own
// connection because closing a migrate instance closes the database it was
// given.
type Migrator struct {
	dsn    string
	logger *zap.Logger
}

// NewMigrator creates a new migrator instance
func NewMigrator(dsn string, logger *zap.Logger) *Migrator {
	return &Migrator{
		dsn:    dsn,
		logger: logger,
	}
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return m.run(func(migrator *migrate.Migrate) error {
		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		m.logVersion(migrator, "Database schema is up to date")
		return nil
	})
}

// Down rolls back every applied migration
func (m *Migrator) Down() error {
	return m.run(func(migrator *migrate.Migrate) error {
		if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		m.logger.Info("Database migrations rolled back")
		return nil
	})
}

// Version returns the applied schema version. ok is false on an empty
// database.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	err = m.run(func(migrator *migrate.Migrate) error {
		var verr error
		version, dirty, verr = migrator.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return fmt.Errorf("failed to get version: %w", verr)
		}
		ok = true
		return nil
	})
	return version, dirty, ok, err
}

func (m *Migrator) logVersion(migrator *migrate.Migrate, message string) {
	version, dirty, err := migrator.Version()
	if err != nil {
		m.logger.Info(message)
		return
	}
	m.logger.Info(message, zap.Uint("version", version), zap.Bool("dirty", dirty))
}

func (m *Migrator) run(fn func(*migrate.Migrate) error) error {
	migrator, err := m.createMigrator()
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
			m.logger.Warn("Failed to close migrator", zap.NamedError("source_error", srcErr), zap.NamedError("database_error", dbErr))
		}
	}()
	return fn(migrator)
}

// createMigrator creates a migrate instance reading the embedded migrations
func (m *Migrator) createMigrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	db, err := sql.Open("postgres", m.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return migrator, nil
}
