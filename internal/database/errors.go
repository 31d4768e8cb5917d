package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrStorageUnavailable marks failures of the store itself (I/O, locking,
// corruption) as opposed to ordinary outcomes such as a missing row.
var ErrStorageUnavailable = errors.New("storage unavailable")

// StorageError wraps a driver error so that errors.Is(err, ErrStorageUnavailable) holds.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// IsUniqueViolation reports whether err is SQLite rejecting a duplicate
// primary key or unique index value.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
