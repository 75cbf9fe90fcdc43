package database

import (
	"time"

	"github.com/coachchris/review-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepo struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) *AuditLogRepo {
	return &AuditLogRepo{db}
}

// Add appends an audit entry. The log is append-only; there is no
// update or delete path.
func (r *AuditLogRepo) Add(entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	return r.db.Create(entry).Error
}

// FindByReviewID returns the audit trail for one review, oldest first.
func (r *AuditLogRepo) FindByReviewID(reviewID uuid.UUID) ([]*models.AuditLogEntry, error) {
	var entries []*models.AuditLogEntry
	err := r.db.Where("review_id = ?", reviewID).Order("timestamp ASC").Find(&entries).Error
	return entries, err
}
