package entities

import "time"

type AuditAction string

const (
	AuditActionBookCreate AuditAction = "book_create"
	AuditActionBookUpdate AuditAction = "book_update"
	AuditActionBookDelete AuditAction = "book_delete"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Action      AuditAction `gorm:"index;size:50" json:"action"`
	ISBN        string      `gorm:"index;size:32" json:"isbn"`
	Description string      `gorm:"size:500" json:"description"`
	Metadata    string      `gorm:"type:text" json:"metadata,omitempty"`
	IPAddress   string      `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent   string      `gorm:"size:500" json:"user_agent,omitempty"`
	RequestID   string      `gorm:"size:64" json:"request_id,omitempty"`
	Status      AuditStatus `gorm:"size:20" json:"status"`
	ErrorMsg    string      `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
