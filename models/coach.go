package models

import "github.com/google/uuid"

// Coach is the single business entity reviews are attached to. Rows are
// provisioned out of band; this service only ever looks one up by its
// display name.
type Coach struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:char(36);primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
}
