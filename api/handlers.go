package api

import (
	"time"

	"github.com/coachchris/review-api/database"
	"github.com/coachchris/review-api/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, mailer *services.Mailer, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		reviewHandler:  newReviewHandler(database.ReviewRepo(), database.AuditLogRepo()),
		contactHandler: newContactHandler(mailer),
		healthHandler:  newHealthHandler(startupTime),
	}
}
