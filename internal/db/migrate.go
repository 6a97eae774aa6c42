package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// Migrator wraps a migrate instance together with the connection it owns.
type Migrator struct {
	m    *migrate.Migrate
	conn *sql.DB
}

func NewMigrator(databaseURL string, migrationsPath string) (*Migrator, error) {
	// Open DB
	dbConn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	driver, err := postgres.WithInstance(dbConn, &postgres.Config{})
	if err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{m: m, conn: dbConn}, nil
}

func (mg *Migrator) Close() {
	mg.m.Close()
	mg.conn.Close()
}

// Up applies all pending migrations, clearing a dirty state first.
func (mg *Migrator) Up() error {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		slog.Warn("Database is in a dirty state, forcing clean state", "version", version)
		if err := mg.m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force migration: %w", err)
		}
	}

	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Down rolls back the given number of migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// Version returns the current schema version; zero means no migrations applied.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func RunMigrations(databaseURL string, migrationsPath string) error {
	mg, err := NewMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(); err != nil {
		return err
	}

	slog.Info("Database migrations completed")
	return nil
}
