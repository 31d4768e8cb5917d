// Package apikeys stores hashed API key credentials.
package apikeys

import (
	"context"
	"time"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Create stores a new key record.
func (r *Repository) Create(ctx context.Context, key *entities.APIKey) error {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}
	if err := r.db.Conn(ctx).Create(key).Error; err != nil {
		return database.StorageError("create api key", err)
	}
	return nil
}

// FindActiveByPrefix returns non-revoked keys whose prefix matches.
func (r *Repository) FindActiveByPrefix(ctx context.Context, prefix string) ([]entities.APIKey, error) {
	keys := []entities.APIKey{}
	err := r.db.Conn(ctx).
		Where("prefix = ? AND revoked_at IS NULL", prefix).
		Find(&keys).Error
	if err != nil {
		return nil, database.StorageError("find api keys", err)
	}
	return keys, nil
}

// List returns every stored key, newest first.
func (r *Repository) List(ctx context.Context) ([]entities.APIKey, error) {
	keys := []entities.APIKey{}
	if err := r.db.Conn(ctx).Order("created_at DESC").Find(&keys).Error; err != nil {
		return nil, database.StorageError("list api keys", err)
	}
	return keys, nil
}

// Revoke marks the key as revoked. It returns false if no active key has that id.
func (r *Repository) Revoke(ctx context.Context, id string) (bool, error) {
	result := r.db.Conn(ctx).
		Model(&entities.APIKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return false, database.StorageError("revoke api key", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// TouchLastUsed records when the key was last presented.
func (r *Repository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	err := r.db.Conn(ctx).
		Model(&entities.APIKey{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
	if err != nil {
		return database.StorageError("touch api key", err)
	}
	return nil
}
