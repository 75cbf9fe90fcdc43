package database

import (
	"errors"

	"github.com/coachchris/review-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachRepo struct {
	db *gorm.DB
}

func NewCoachRepo(db *gorm.DB) *CoachRepo {
	return &CoachRepo{db}
}

// FindByName returns the coach with the given display name, or nil
// when no such row exists.
func (r *CoachRepo) FindByName(name string) (*models.Coach, error) {
	var coach models.Coach
	err := r.db.Where("name = ?", name).First(&coach).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

// Add inserts a new coach. Used by provisioning and test fixtures; the
// HTTP layer never creates coaches.
func (r *CoachRepo) Add(coach *models.Coach) error {
	if coach.ID == uuid.Nil {
		coach.ID = uuid.New()
	}
	return r.db.Create(coach).Error
}
