package models

import (
	"time"

	"github.com/google/uuid"
)

// SourceWeb is recorded on every review created through the public API.
const SourceWeb = "Web"

// Review is a single submitted review. Rows are created unpublished and
// flipped by moderation; nothing deletes them.
type Review struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:char(36);primaryKey;not null"`
	CoachID      uuid.UUID `json:"coachId" db:"coach_id" gorm:"type:char(36);not null;index"`
	ReviewerName string    `json:"reviewerName" db:"reviewer_name" gorm:"type:varchar(255);not null"`
	ReviewerRole string    `json:"reviewerRole" db:"reviewer_role" gorm:"type:varchar(255);not null"`
	Rating       int       `json:"rating" db:"rating" gorm:"not null;index"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Body         string    `json:"body" db:"body" gorm:"type:text;not null"`
	Published    bool      `json:"published" db:"published" gorm:"not null;default:false;index"`
	Source       string    `json:"source" db:"source" gorm:"type:varchar(32);not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"not null;index"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:review_tags"`
}
