package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/coachchris/review-api/database"
	"github.com/coachchris/review-api/errs"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type reviewHandler struct {
	responder  Responder
	logger     zerolog.Logger
	reviewRepo *database.ReviewRepo
	auditRepo  *database.AuditLogRepo
}

func newReviewHandler(reviewRepo *database.ReviewRepo, auditRepo *database.AuditLogRepo) reviewHandler {
	logger := log.With().Str("handlerName", "reviewHandler").Logger()

	return reviewHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		reviewRepo: reviewRepo,
		auditRepo:  auditRepo,
	}
}

// createReview accepts a public review submission. The review is stored
// unpublished; moderation decides what the public listing shows.
func (h reviewHandler) createReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}

		// Validate before any database access.
		for _, field := range []struct{ name, value string }{
			{"reviewerName", req.ReviewerName},
			{"reviewerRole", req.ReviewerRole},
			{"title", req.Title},
			{"body", req.Body},
		} {
			if strings.TrimSpace(field.value) == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field.name))
				return
			}
		}
		if req.Rating == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("rating"))
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("rating", "must be between 1 and 5"))
			return
		}

		review, err := h.reviewRepo.Create(database.CreateReviewParams{
			ReviewerName: req.ReviewerName,
			ReviewerRole: req.ReviewerRole,
			Rating:       req.Rating,
			Title:        req.Title,
			Body:         req.Body,
			Tags:         req.Tags,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "review", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, CreateReviewResponse{
			ID:        review.ID,
			CreatedAt: review.CreatedAt,
		})
	}
}

// listPublishedReviews serves the public listing. Only published rows
// are ever returned here, whatever the filters say.
func (h reviewHandler) listPublishedReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ListFilter{
			Role:      r.URL.Query().Get("role"),
			Search:    r.URL.Query().Get("search"),
			MinRating: 1,
			Limit:     database.DefaultListLimit,
		}

		if v := r.URL.Query().Get("minRating"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("minRating", "must be an integer"))
				return
			}
			filter.MinRating = n
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be an integer"))
				return
			}
			filter.Limit = n
		}

		reviews, err := h.reviewRepo.ListPublished(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "reviews", err))
			return
		}

		out := make([]ReviewSummary, 0, len(reviews))
		for _, review := range reviews {
			out = append(out, ReviewSummary{
				ID:           review.ID,
				ReviewerName: review.ReviewerName,
				ReviewerRole: review.ReviewerRole,
				Rating:       review.Rating,
				Title:        review.Title,
				Body:         review.Body,
				CreatedAt:    review.CreatedAt,
			})
		}

		h.responder.WriteJSON(w, out)
	}
}

// getStats serves the aggregate numbers the public site renders.
func (h reviewHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.reviewRepo.Stats()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "review stats", err))
			return
		}

		h.responder.WriteJSON(w, stats)
	}
}

// listAllReviews serves the moderation dashboard: every review,
// unpublished included, with tags.
func (h reviewHandler) listAllReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := h.reviewRepo.ListAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "reviews", err))
			return
		}

		h.responder.WriteJSON(w, reviews)
	}
}

// setPublished flips a review's moderation state.
func (h reviewHandler) setPublished() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		var req SetPublishedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}
		actor := strings.TrimSpace(req.Actor)
		if actor == "" {
			actor = "Moderator"
		}

		review, err := h.reviewRepo.SetPublished(reviewID, req.Published, actor)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "review", err))
			return
		}

		h.responder.WriteJSON(w, review)
	}
}

// getAuditTrail returns the append-only history for one review.
func (h reviewHandler) getAuditTrail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		entries, err := h.auditRepo.FindByReviewID(reviewID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "audit entries", err))
			return
		}

		h.responder.WriteJSON(w, entries)
	}
}
