package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coachchris/review-api/errs"
	"github.com/coachchris/review-api/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Page-size bounds for the public listing.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// CreateReviewParams is the input to Create. Tags may be empty.
type CreateReviewParams struct {
	ReviewerName string
	ReviewerRole string
	Rating       int
	Title        string
	Body         string
	Tags         []string
}

// ListFilter narrows the public listing. Zero values mean "no filter";
// a non-positive Limit falls back to DefaultListLimit.
type ListFilter struct {
	Role      string
	MinRating int
	Limit     int
	Search    string
}

type ReviewRepo struct {
	db        *gorm.DB
	coachName string
}

func NewReviewRepo(db *gorm.DB, cfg Config) *ReviewRepo {
	return &ReviewRepo{db: db, coachName: cfg.CoachName}
}

// Create inserts a review for the configured coach, resolves and
// attaches its tags, and appends the creation audit entry. All writes
// share one transaction so a failed tag or audit insert never leaves a
// half-created review behind. The review row is written before the
// association and audit rows because both reference its id.
func (r *ReviewRepo) Create(params CreateReviewParams) (*models.Review, error) {
	review := &models.Review{
		ID:           uuid.New(),
		ReviewerName: strings.TrimSpace(params.ReviewerName),
		ReviewerRole: params.ReviewerRole,
		Rating:       params.Rating,
		Title:        strings.TrimSpace(params.Title),
		Body:         strings.TrimSpace(params.Body),
		Published:    false,
		Source:       models.SourceWeb,
		CreatedAt:    time.Now().UTC(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var coach models.Coach
		if err := tx.Where("name = ?", r.coachName).First(&coach).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound(fmt.Sprintf("coach %q", r.coachName))
			}
			return err
		}
		review.CoachID = coach.ID

		if err := tx.Omit("Tags").Create(review).Error; err != nil {
			return err
		}

		if len(params.Tags) > 0 {
			tagIDs, err := ensureTags(tx, params.Tags)
			if err != nil {
				return err
			}
			if len(tagIDs) > 0 {
				links := make([]models.ReviewTag, 0, len(tagIDs))
				for _, tagID := range tagIDs {
					links = append(links, models.ReviewTag{ReviewID: review.ID, TagID: tagID})
				}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
					return err
				}
			}
		}

		entry := models.AuditLogEntry{
			ID:        uuid.New(),
			ReviewID:  review.ID,
			Actor:     review.ReviewerName,
			Action:    models.AuditActionCreated,
			Notes:     "Web submission",
			Timestamp: time.Now().UTC(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListPublished returns published reviews only, newest first. Requested
// limits above MaxListLimit are capped; zero or negative limits fall
// back to DefaultListLimit.
func (r *ReviewRepo) ListPublished(filter ListFilter) ([]*models.Review, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := r.db.Where("published = ?", true)
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}
	if filter.Role != "" {
		query = query.Where("reviewer_role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(body) LIKE ? OR LOWER(reviewer_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var reviews []*models.Review
	err := query.Order("created_at DESC").Limit(limit).Find(&reviews).Error
	return reviews, err
}

// ListAll returns every review including unpublished ones, newest
// first, with tags preloaded. Moderation dashboard only; never exposed
// on the public listing path.
func (r *ReviewRepo) ListAll() ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.Preload("Tags").Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// FindByID returns a review with its tags regardless of published
// state, or nil when no row matches.
func (r *ReviewRepo) FindByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Tags").First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// SetPublished flips a review's published flag and appends the
// matching audit entry in the same transaction.
func (r *ReviewRepo) SetPublished(id uuid.UUID, published bool, actor string) (*models.Review, error) {
	var review models.Review
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFound("review")
			}
			return err
		}

		if err := tx.Model(&review).Update("published", published).Error; err != nil {
			return err
		}

		action := models.AuditActionUnpublished
		notes := "Hidden from public listing"
		if published {
			action = models.AuditActionPublished
			notes = "Visible in public listing"
		}
		entry := models.AuditLogEntry{
			ID:        uuid.New(),
			ReviewID:  review.ID,
			Actor:     actor,
			Action:    action,
			Notes:     notes,
			Timestamp: time.Now().UTC(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Stats aggregates the published review set. The independent aggregate
// queries run concurrently over the pooled connections.
func (r *ReviewRepo) Stats() (*models.ReviewStats, error) {
	stats := &models.ReviewStats{
		RatingHistogram: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	var avg sql.NullFloat64
	var buckets []struct {
		Rating int
		Count  int64
	}

	var g errgroup.Group
	g.Go(func() error {
		return r.db.Model(&models.Review{}).
			Where("published = ?", true).
			Count(&stats.TotalPublished).Error
	})
	g.Go(func() error {
		row := r.db.Model(&models.Review{}).
			Where("published = ?", true).
			Select("AVG(rating)").Row()
		return row.Scan(&avg)
	})
	g.Go(func() error {
		cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)
		return r.db.Model(&models.Review{}).
			Where("published = ? AND created_at >= ?", true, cutoff).
			Count(&stats.Last30dCount).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Review{}).
			Where("published = ?", true).
			Select("rating, COUNT(*) AS count").
			Group("rating").
			Scan(&buckets).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.AvgRating = "0.00"
	if avg.Valid {
		stats.AvgRating = fmt.Sprintf("%.2f", avg.Float64)
	}
	for _, bucket := range buckets {
		// Ratings outside 1-5 cannot be written through this store;
		// ignore them rather than grow the histogram.
		if _, ok := stats.RatingHistogram[bucket.Rating]; ok {
			stats.RatingHistogram[bucket.Rating] = bucket.Count
		}
	}
	return stats, nil
}
