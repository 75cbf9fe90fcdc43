package models

import "github.com/google/uuid"

// ReviewTag joins reviews to tags. The composite primary key makes a
// repeated association a conflict, which the store inserts around.
type ReviewTag struct {
	ReviewID uuid.UUID `json:"reviewId" db:"review_id" gorm:"type:char(36);primaryKey"`
	TagID    uuid.UUID `json:"tagId" db:"tag_id" gorm:"type:char(36);primaryKey"`
}
