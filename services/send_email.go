package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coachchris/review-api/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultResendBaseURL = "https://api.resend.com"

// resendEmailRequest represents the request payload for the Resend API
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Mailer delivers notification email through the Resend API.
//
// Recognized configuration: RESEND_API_KEY, RESEND_FROM_EMAIL and
// CONTACT_RECIPIENT. When the key or recipient is missing the mailer
// stays disabled and messages are logged and dropped, since contact
// delivery is best-effort.
type Mailer struct {
	baseURL   string
	apiKey    string
	from      string
	recipient string
	client    *http.Client
	logger    zerolog.Logger
}

func NewMailer(c map[string]string) *Mailer {
	return &Mailer{
		baseURL:   config.GetString(c, "RESEND_BASE_URL", defaultResendBaseURL),
		apiKey:    config.GetString(c, "RESEND_API_KEY", ""),
		from:      config.GetString(c, "RESEND_FROM_EMAIL", "Coach Reviews <onboarding@resend.dev>"),
		recipient: config.GetString(c, "CONTACT_RECIPIENT", ""),
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    log.With().Str("service", "mailer").Logger(),
	}
}

// Enabled reports whether delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.apiKey != "" && m.recipient != ""
}

// SendContactMessage forwards a contact-form submission to the
// configured recipient.
func (m *Mailer) SendContactMessage(name, email, message string) error {
	if !m.Enabled() {
		m.logger.Warn().Str("from", email).Msg("mailer not configured, dropping contact message")
		return nil
	}

	payload := resendEmailRequest{
		From:    m.from,
		To:      []string{m.recipient},
		Subject: fmt.Sprintf("New contact form message from %s", name),
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/emails", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("building email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(body))
	}

	m.logger.Info().Str("from", email).Msg("contact message delivered")
	return nil
}
