package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coachchris/review-api/database"
	"github.com/coachchris/review-api/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the full router against an in-memory store with
// one seeded coach.
func newTestRouter(t *testing.T, coachName string) (http.Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each SQLite ":memory:" connection is its own database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Create(&models.Coach{ID: uuid.New(), Name: "Coach A"}).Error)

	store := database.New(db, database.Config{CoachName: coachName})
	router := newRouter(store, withConfig(map[string]string{}), withStartupTime(time.Now()))
	return router, db
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func validCreateRequest() CreateReviewRequest {
	return CreateReviewRequest{
		ReviewerName: "Jane",
		ReviewerRole: "Parent/Guardian",
		Rating:       5,
		Title:        "Great",
		Body:         "Excellent coaching",
		Tags:         []string{"motivation", "Motivation ", "discipline"},
	}
}

func TestCreateReviewEndpoint(t *testing.T) {
	router, db := newTestRouter(t, "Coach A")

	rec := doJSON(t, router, http.MethodPost, "/api/reviews", validCreateRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeBody[CreateReviewResponse](t, rec)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.False(t, resp.CreatedAt.IsZero())

	var review models.Review
	require.NoError(t, db.Preload("Tags").First(&review, "id = ?", resp.ID).Error)
	assert.False(t, review.Published)
	assert.Equal(t, models.SourceWeb, review.Source)
	assert.Len(t, review.Tags, 2)

	var entries []models.AuditLogEntry
	require.NoError(t, db.Where("review_id = ?", resp.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.AuditActionCreated, entries[0].Action)
}

func TestCreateReviewValidation(t *testing.T) {
	router, db := newTestRouter(t, "Coach A")

	tests := []struct {
		name   string
		mutate func(*CreateReviewRequest)
		field  string
	}{
		{"missing reviewer name", func(r *CreateReviewRequest) { r.ReviewerName = "  " }, "reviewerName"},
		{"missing role", func(r *CreateReviewRequest) { r.ReviewerRole = "" }, "reviewerRole"},
		{"missing title", func(r *CreateReviewRequest) { r.Title = "" }, "title"},
		{"missing body", func(r *CreateReviewRequest) { r.Body = "" }, "body"},
		{"missing rating", func(r *CreateReviewRequest) { r.Rating = 0 }, "rating"},
		{"rating out of range", func(r *CreateReviewRequest) { r.Rating = 7 }, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			rec := doJSON(t, router, http.MethodPost, "/api/reviews", req)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			resp := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, tt.field, resp.Field)
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	// No rejected submission may have written anything.
	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateReviewCoachMissing(t *testing.T) {
	router, _ := newTestRouter(t, "Nobody")

	rec := doJSON(t, router, http.MethodPost, "/api/reviews", validCreateRequest())
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestListPublishedReviewsEndpoint(t *testing.T) {
	router, db := newTestRouter(t, "Coach A")

	var coach models.Coach
	require.NoError(t, db.First(&coach).Error)

	now := time.Now().UTC()
	seed := func(rating int, published bool, role, title string, age time.Duration) models.Review {
		review := models.Review{
			ID:           uuid.New(),
			CoachID:      coach.ID,
			ReviewerName: "Reviewer",
			ReviewerRole: role,
			Rating:       rating,
			Title:        title,
			Body:         "Body",
			Published:    published,
			Source:       models.SourceWeb,
			CreatedAt:    now.Add(-age),
		}
		require.NoError(t, db.Create(&review).Error)
		return review
	}

	newest := seed(5, true, "Athlete", "Outstanding", 0)
	seed(3, true, "Parent/Guardian", "Decent", time.Hour)
	hidden := seed(5, false, "Athlete", "Hidden gem", 2*time.Hour)

	t.Run("returns only published reviews newest first", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/reviews", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		reviews := decodeBody[[]ReviewSummary](t, rec)
		require.Len(t, reviews, 2)
		assert.Equal(t, newest.ID, reviews[0].ID)
		for _, review := range reviews {
			assert.NotEqual(t, hidden.ID, review.ID)
		}
	})

	t.Run("applies filters from the query string", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/reviews?minRating=4&role=Athlete&search=outstanding", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		reviews := decodeBody[[]ReviewSummary](t, rec)
		require.Len(t, reviews, 1)
		assert.Equal(t, newest.ID, reviews[0].ID)
	})

	t.Run("rejects non-numeric filter values", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/reviews?minRating=lots", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/api/reviews?limit=many", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("admin listing includes unpublished rows", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/reviews/all", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		reviews := decodeBody[[]models.Review](t, rec)
		assert.Len(t, reviews, 3)
	})
}

func TestStatsEndpoint(t *testing.T) {
	router, db := newTestRouter(t, "Coach A")

	t.Run("zero state", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/reviews/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decodeBody[models.ReviewStats](t, rec)
		assert.EqualValues(t, 0, stats.TotalPublished)
		assert.Equal(t, "0.00", stats.AvgRating)
		assert.EqualValues(t, 0, stats.Last30dCount)
		require.Len(t, stats.RatingHistogram, 5)
	})

	t.Run("histogram sums to total", func(t *testing.T) {
		var coach models.Coach
		require.NoError(t, db.First(&coach).Error)

		for _, rating := range []int{5, 4, 4, 2} {
			require.NoError(t, db.Create(&models.Review{
				ID: uuid.New(), CoachID: coach.ID,
				ReviewerName: "R", ReviewerRole: "Athlete",
				Rating: rating, Title: "T", Body: "B",
				Published: true, Source: models.SourceWeb,
				CreatedAt: time.Now().UTC(),
			}).Error)
		}

		rec := doJSON(t, router, http.MethodGet, "/api/reviews/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decodeBody[models.ReviewStats](t, rec)
		assert.EqualValues(t, 4, stats.TotalPublished)
		assert.Equal(t, "3.75", stats.AvgRating)

		var sum int64
		for _, count := range stats.RatingHistogram {
			sum += count
		}
		assert.Equal(t, stats.TotalPublished, sum)
	})
}

func TestSetPublishedEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "Coach A")

	rec := doJSON(t, router, http.MethodPost, "/api/reviews", validCreateRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[CreateReviewResponse](t, rec)

	t.Run("publish makes the review public", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch,
			fmt.Sprintf("/api/reviews/%s/publish", created.ID),
			SetPublishedRequest{Published: true, Actor: "Chris"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		listed := decodeBody[[]ReviewSummary](t, doJSON(t, router, http.MethodGet, "/api/reviews", nil))
		require.Len(t, listed, 1)
		assert.Equal(t, created.ID, listed[0].ID)
	})

	t.Run("audit trail records the full history", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet,
			fmt.Sprintf("/api/reviews/%s/audit", created.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		entries := decodeBody[[]models.AuditLogEntry](t, rec)
		require.Len(t, entries, 2)
		assert.Equal(t, models.AuditActionCreated, entries[0].Action)
		assert.Equal(t, models.AuditActionPublished, entries[1].Action)
	})

	t.Run("unknown review is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch,
			fmt.Sprintf("/api/reviews/%s/publish", uuid.New()),
			SetPublishedRequest{Published: true})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid review id is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPatch, "/api/reviews/not-a-uuid/publish",
			SetPublishedRequest{Published: true})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContactEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "Coach A")

	t.Run("accepts a complete submission", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/contact", ContactRequest{
			Name:    "Jane",
			Email:   "jane@example.com",
			Message: "Do you coach juniors?",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decodeBody[map[string]bool](t, rec)
		assert.True(t, resp["success"])
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/contact", ContactRequest{
			Name: "Jane",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "Coach A")

	for _, path := range []string{"/", "/health"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)

		resp := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "ok", resp["status"])
	}
}
