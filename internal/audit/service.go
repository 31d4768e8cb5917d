package audit

import (
	"context"
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/entities"
)

// RequestMeta identifies the client request that caused an event.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// Service provides high-level audit logging functionality.
// A nil *Service is valid and records nothing.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event. Failures are logged and otherwise ignored so
// that auditing never changes the outcome of the request being audited.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) {
	if s == nil {
		return
	}
	if err := s.repo.LogEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("action", string(event.Action)).Msg("failed to log audit event")
	}
}

// LogBook records a create, update or delete of the book identified by isbn.
// A non-nil err marks the event as failed.
func (s *Service) LogBook(ctx context.Context, action entities.AuditAction, isbn, description string, meta RequestMeta, metadata map[string]any, err error) {
	if s == nil {
		return
	}

	event := &entities.AuditEvent{
		Action:      action,
		ISBN:        isbn,
		Description: truncate(description, 500),
		IPAddress:   meta.IPAddress,
		UserAgent:   truncate(meta.UserAgent, 500),
		RequestID:   meta.RequestID,
		Status:      entities.AuditStatusSuccess,
	}

	if len(metadata) > 0 {
		if mdBytes, e := json.Marshal(metadata); e == nil {
			event.Metadata = string(mdBytes)
		}
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.Log(ctx, event)
}

// GetEvents retrieves paginated audit events, optionally for a single ISBN.
func (s *Service) GetEvents(ctx context.Context, isbn string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	if s == nil {
		return []entities.AuditEvent{}, 0, nil
	}
	return s.repo.GetEvents(ctx, isbn, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
