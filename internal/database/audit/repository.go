package audit

import (
	"context"
	"time"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

const defaultPageSize = 50

type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if err := r.db.Conn(ctx).Create(event).Error; err != nil {
		return database.StorageError("log audit event", err)
	}
	return nil
}

// GetEvents retrieves paginated audit events, most recent first.
// An empty isbn returns events for every book.
func (r *Repository) GetEvents(ctx context.Context, isbn string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	events := []entities.AuditEvent{}
	var total int64

	query := r.db.Conn(ctx).Model(&entities.AuditEvent{})
	if isbn != "" {
		query = query.Where("isbn = ?", isbn)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.StorageError("count audit events", err)
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, database.StorageError("list audit events", err)
	}
	return events, total, nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.Conn(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	if result.Error != nil {
		return 0, database.StorageError("delete audit events", result.Error)
	}
	return result.RowsAffected, nil
}
