package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrInsufficientData = errors.New("insufficient data")
	ErrExhausted        = errors.New("exhausted")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("concurrent modification")
	ErrStorage          = errors.New("storage error")
)

// StorageError reports a failure of the underlying store: a driver error, a
// commit that did not go through, or a transaction that ran out of time.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

var taxonomy = []error{
	ErrDuplicateKey,
	ErrNotFound,
	ErrInvalidState,
	ErrInsufficientData,
	ErrExhausted,
	ErrInvalidInput,
	ErrStorage,
}

func classified(err error) bool {
	for _, target := range taxonomy {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// translate maps driver and ORM errors into the package taxonomy. Errors
// already in the taxonomy pass through untouched.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if classified(err) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: referenced row missing: %w", op, ErrNotFound)
	}
	return &StorageError{Op: op, Err: err}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
