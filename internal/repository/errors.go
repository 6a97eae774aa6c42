package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key violation")
	ErrForeignKey = errors.New("foreign key violation")
)

// Postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps driver errors onto the repository sentinels while keeping
// the original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w (%s): %w", ErrDuplicate, pgErr.ConstraintName, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w (%s): %w", ErrForeignKey, pgErr.ConstraintName, err)
		}
	}
	return err
}
