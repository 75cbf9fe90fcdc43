package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerDisabledWithoutConfig(t *testing.T) {
	mailer := NewMailer(map[string]string{})
	assert.False(t, mailer.Enabled())

	// Dropping the message is not an error; delivery is best-effort.
	require.NoError(t, mailer.SendContactMessage("Jane", "jane@example.com", "Hi"))
}

func TestMailerSendsContactMessage(t *testing.T) {
	var got resendEmailRequest
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.Equal(t, "/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer := NewMailer(map[string]string{
		"RESEND_BASE_URL":   server.URL,
		"RESEND_API_KEY":    "test-key",
		"RESEND_FROM_EMAIL": "Coach Reviews <noreply@example.com>",
		"CONTACT_RECIPIENT": "chris@example.com",
	})
	require.True(t, mailer.Enabled())

	require.NoError(t, mailer.SendContactMessage("Jane", "jane@example.com", "Do you coach juniors?"))

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, []string{"chris@example.com"}, got.To)
	assert.Contains(t, got.Subject, "Jane")
	assert.Contains(t, got.Text, "jane@example.com")
	assert.Contains(t, got.Text, "Do you coach juniors?")
}

func TestMailerSurfacesProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	mailer := NewMailer(map[string]string{
		"RESEND_BASE_URL":   server.URL,
		"RESEND_API_KEY":    "bad-key",
		"CONTACT_RECIPIENT": "chris@example.com",
	})

	err := mailer.SendContactMessage("Jane", "jane@example.com", "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
