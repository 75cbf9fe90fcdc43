package models

import "github.com/google/uuid"

// Tag is a short descriptive label shared across reviews. Values are
// stored trimmed and created lazily; the unique index on the value is
// what makes concurrent creation converge on a single row.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:char(36);primaryKey;not null"`
	Value string    `json:"tag" db:"tag" gorm:"column:tag;type:varchar(255);not null;uniqueIndex"`
}
