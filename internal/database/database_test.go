package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_CreatesSchema(t *testing.T) {
	db := setupTestDB(t)

	migrator := db.DB.Migrator()
	assert.True(t, migrator.HasTable(&entities.Book{}))
	assert.True(t, migrator.HasTable(&entities.APIKey{}))
	assert.True(t, migrator.HasTable(&entities.AuditEvent{}))
	assert.True(t, migrator.HasColumn(&entities.Book{}, "short_description"))
	assert.True(t, migrator.HasColumn(&entities.Book{}, "page_count"))
}

func TestInitialize_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "idempotent.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.Book{
		ISBN: "978-0134190440", Title: "Kept", Author: "A", ShortDescription: "d", PageCount: 1,
	}).Error)

	require.NoError(t, db.Initialize())
	require.NoError(t, db.Close())

	// Reopening runs the initializer again against existing tables.
	reopened, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	var count int64
	require.NoError(t, reopened.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnicodeLowerFunc(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		input    string
		expected string
	}{
		{"ÉLAN", "élan"},
		{"Straße", "straße"},
		{"ПРИВЕТ", "привет"},
		{"Go", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got string
			err := db.DB.Raw("SELECT "+UnicodeLowerFunc+"(?)", tt.input).Scan(&got).Error
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewDatabase_FailsOnUnreachablePath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "library.db")

	_, err := NewDatabase(dbPath)
	assert.Error(t, err)
}

func TestNewDatabase_InMemory(t *testing.T) {
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	defer db.Close()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()))
}

func TestConn_UsesContext(t *testing.T) {
	db := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count int64
	err := db.Conn(ctx).Model(&entities.Book{}).Count(&count).Error
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("from the driver", func(t *testing.T) {
		db := setupTestDB(t)
		book := entities.Book{ISBN: "978-0134190440", Title: "T", Author: "A", ShortDescription: "d", PageCount: 1}
		require.NoError(t, db.DB.Create(&book).Error)

		dup := book
		err := db.DB.Create(&dup).Error
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("gorm translated", func(t *testing.T) {
		assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	})

	t.Run("raw sqlite error", func(t *testing.T) {
		err := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(nil))
		assert.False(t, IsUniqueViolation(errors.New("disk I/O error")))
		assert.False(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrBusy}))
	})
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := StorageError("create book", cause)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create book")
}
