package api

import (
	"time"

	"github.com/google/uuid"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	reviewHandler  reviewHandler
	contactHandler contactHandler
	healthHandler  healthHandler
}

// CreateReviewRequest is the body of POST /api/reviews.
type CreateReviewRequest struct {
	ReviewerName string   `json:"reviewerName"`
	ReviewerRole string   `json:"reviewerRole"`
	Rating       int      `json:"rating"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Tags         []string `json:"tags,omitempty"`
}

// CreateReviewResponse acknowledges a stored submission.
type CreateReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewSummary is the public listing shape. Moderation state and the
// coach linkage stay internal.
type ReviewSummary struct {
	ID           uuid.UUID `json:"id"`
	ReviewerName string    `json:"reviewerName"`
	ReviewerRole string    `json:"reviewerRole"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SetPublishedRequest is the body of PATCH /api/reviews/{reviewID}/publish.
type SetPublishedRequest struct {
	Published bool   `json:"published"`
	Actor     string `json:"actor,omitempty"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
