package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public submission endpoints and the moderation
// endpoints the admin dashboard calls.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.healthHandler.healthCheck())
		r.Get("/health", handlers.healthHandler.healthCheck())

		// Review endpoints
		r.Post("/api/reviews", handlers.reviewHandler.createReview())
		r.Get("/api/reviews", handlers.reviewHandler.listPublishedReviews())
		r.Get("/api/reviews/stats", handlers.reviewHandler.getStats())
		r.Get("/api/reviews/all", handlers.reviewHandler.listAllReviews())
		r.Patch("/api/reviews/{reviewID}/publish", handlers.reviewHandler.setPublished())
		r.Get("/api/reviews/{reviewID}/audit", handlers.reviewHandler.getAuditTrail())

		// Contact form
		r.Post("/api/contact", handlers.contactHandler.submitContact())
	})
}
