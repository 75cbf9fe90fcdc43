package database

import (
	"strings"

	"github.com/coachchris/review-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// NormalizeTagNames trims each name, drops blanks, and removes
// duplicates, preserving first-seen order and spelling. Duplicate
// detection is case-insensitive to match the collation on the tags
// table, so "Motivation " collapses into an earlier "motivation".
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, name)
	}
	return normalized
}

// Ensure resolves tag names to ids, lazily creating rows that do not
// exist yet. Calling it twice with the same names returns the same
// ids, and concurrent calls racing on a new name converge on a single
// row: the insert ignores conflicts on the unique tag value and the
// requery picks up whichever insert won.
func (r *TagRepo) Ensure(names []string) ([]uuid.UUID, error) {
	return ensureTags(r.db, names)
}

// FindAll returns all tags from the database
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Find(&tags).Error
	return tags, err
}

func ensureTags(tx *gorm.DB, names []string) ([]uuid.UUID, error) {
	normalized := NormalizeTagNames(names)
	if len(normalized) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(normalized))
	for i, name := range normalized {
		lowered[i] = strings.ToLower(name)
	}

	have := make(map[string]uuid.UUID, len(normalized))
	load := func() error {
		var existing []models.Tag
		if err := tx.Where("LOWER(tag) IN ?", lowered).Find(&existing).Error; err != nil {
			return err
		}
		for _, tag := range existing {
			have[strings.ToLower(tag.Value)] = tag.ID
		}
		return nil
	}
	if err := load(); err != nil {
		return nil, err
	}

	var missing []models.Tag
	for _, name := range normalized {
		if _, ok := have[strings.ToLower(name)]; !ok {
			missing = append(missing, models.Tag{ID: uuid.New(), Value: name})
		}
	}
	if len(missing) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&missing).Error; err != nil {
			return nil, err
		}
		// Requery instead of trusting the generated ids: a concurrent
		// caller may have won the insert for some of these names.
		if err := load(); err != nil {
			return nil, err
		}
	}

	ids := make([]uuid.UUID, 0, len(normalized))
	for _, name := range normalized {
		// Names that still have no row are dropped; with the ignore-on-
		// conflict insert above this should not happen.
		if id, ok := have[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
