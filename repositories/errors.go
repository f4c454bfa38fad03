package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned for any missing row. Callers map it to 404;
// repositories never surface gorm.ErrRecordNotFound directly.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique index rejects an insert or update.
var ErrDuplicate = errors.New("duplicate record")

// translateError maps driver errors to the repository error set.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isDuplicateError(err) {
		return ErrDuplicate
	}
	return err
}

// isDuplicateError detects unique-constraint violations across postgres
// and the sqlite test driver.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
