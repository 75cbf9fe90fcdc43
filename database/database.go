package database

import (
	"github.com/coachchris/review-api/models"
	"gorm.io/gorm"
)

// Config carries the deployment-time options the review store is
// constructed with.
type Config struct {
	// CoachName identifies which coach record new reviews attach to.
	CoachName string
}

type Database struct {
	coachRepo    *CoachRepo
	reviewRepo   *ReviewRepo
	tagRepo      *TagRepo
	auditLogRepo *AuditLogRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB, cfg Config) Database {
	return Database{
		coachRepo:    NewCoachRepo(db),
		reviewRepo:   NewReviewRepo(db, cfg),
		tagRepo:      NewTagRepo(db),
		auditLogRepo: NewAuditLogRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CoachRepo() *CoachRepo {
	return d.coachRepo
}

func (d Database) ReviewRepo() *ReviewRepo {
	return d.reviewRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) AuditLogRepo() *AuditLogRepo {
	return d.auditLogRepo
}

// Migrate creates or updates the schema. The join table is registered
// first so review-tag association rows go through the explicit
// ReviewTag model and its composite key.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Review{}, "Tags", &models.ReviewTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Coach{},
		&models.Review{},
		&models.Tag{},
		&models.AuditLogEntry{},
	)
}
