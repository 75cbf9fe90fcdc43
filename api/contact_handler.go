package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coachchris/review-api/errs"
	"github.com/coachchris/review-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    *services.Mailer
}

func newContactHandler(mailer *services.Mailer) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
	}
}

// submitContact forwards a contact-form message to the coach's inbox.
// Delivery is best-effort: the submitter gets an acknowledgement even
// when the mail provider is down, and the failure is logged instead.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("JSON", err))
			return
		}

		for _, field := range []struct{ name, value string }{
			{"name", req.Name},
			{"email", req.Email},
			{"message", req.Message},
		} {
			if strings.TrimSpace(field.value) == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field.name))
				return
			}
		}

		if err := h.mailer.SendContactMessage(req.Name, req.Email, req.Message); err != nil {
			h.logger.Error().Err(err).Msg("failed to deliver contact message")
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]bool{"success": true})
	}
}
