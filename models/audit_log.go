package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the store.
const (
	AuditActionCreated     = "Created"
	AuditActionPublished   = "Published"
	AuditActionUnpublished = "Unpublished"
)

// AuditLogEntry is an append-only record of an action taken on a
// review. There is no update or delete path.
type AuditLogEntry struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:char(36);primaryKey;not null"`
	ReviewID  uuid.UUID `json:"reviewId" db:"review_id" gorm:"type:char(36);not null;index"`
	Actor     string    `json:"actor" db:"actor" gorm:"type:varchar(255);not null"`
	Action    string    `json:"action" db:"action" gorm:"type:varchar(32);not null"`
	Notes     string    `json:"notes" db:"notes" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" db:"timestamp" gorm:"not null"`
}

// TableName keeps the historical table name from the original schema.
func (AuditLogEntry) TableName() string { return "audit_log" }
