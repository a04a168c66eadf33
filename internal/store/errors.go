package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotFound            = errors.New("not found")
	ErrTransactionFailed   = errors.New("transaction failed")
)

// Kind names the sentinel err wraps, for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, ErrForeignKeyViolation):
		return "foreign_key_violation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "transaction_failed"
	}
}

// classify maps a gorm error onto the store's error kinds. Errors that already
// carry a kind pass through unchanged.
func classify(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidationFailed),
		errors.Is(err, ErrForeignKeyViolation),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrTransactionFailed):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", action, ErrForeignKeyViolation)
	default:
		return fmt.Errorf("%s: %w: %v", action, ErrTransactionFailed, err)
	}
}
