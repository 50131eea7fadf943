package email_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactdesk/pkg/email"
	"github.com/dmitrymomot/contactdesk/pkg/validator"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "team@example.com",
		ReplyTo:  "maria@example.com",
		Subject:  "Novo contato",
		BodyHTML: "<p>Olá</p>",
		BodyText: "Olá",
		Tag:      "contact-created",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
		field  string
	}{
		{name: "valid", mutate: func(*email.SendEmailParams) {}},
		{name: "text body only", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }},
		{name: "missing recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }, field: "send_to"},
		{name: "invalid recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "nope" }, field: "send_to"},
		{name: "invalid reply to", mutate: func(p *email.SendEmailParams) { p.ReplyTo = "nope" }, field: "reply_to"},
		{name: "missing subject", mutate: func(p *email.SendEmailParams) { p.Subject = "" }, field: "subject"},
		{name: "no body", mutate: func(p *email.SendEmailParams) { p.BodyHTML, p.BodyText = "", "" }, field: "body_html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field))
		})
	}
}

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing server token", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(email.Config{SenderEmail: "no-reply@example.com"})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "PostmarkServerToken is required")
	})

	t.Run("invalid sender", func(t *testing.T) {
		t.Parallel()

		client, err := email.NewPostmarkClient(email.Config{
			PostmarkServerToken: "server-token",
			SenderEmail:         "not-an-email",
		})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})
}

func postmarkServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value) {
	t.Helper()

	var received atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		received.Store(map[string]string{
			"token": r.Header.Get("X-Postmark-Server-Token"),
			"body":  string(raw),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	srv, received := postmarkServer(t, http.StatusOK,
		`{"To":"team@example.com","MessageID":"abc","ErrorCode":0,"Message":"OK"}`)

	sender, err := email.NewPostmarkClient(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "no-reply@example.com",
	}, email.WithBaseURL(srv.URL))
	require.NoError(t, err)

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	got, ok := received.Load().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "server-token", got["token"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(got["body"]), &payload))
	assert.Equal(t, "no-reply@example.com", payload["From"])
	assert.Equal(t, "team@example.com", payload["To"])
	assert.Equal(t, "maria@example.com", payload["ReplyTo"])
	assert.Equal(t, "Novo contato", payload["Subject"])
}

func TestPostmarkClient_SendEmailRejected(t *testing.T) {
	t.Parallel()

	srv, _ := postmarkServer(t, http.StatusUnprocessableEntity,
		`{"ErrorCode":300,"Message":"Invalid email request"}`)

	sender, err := email.NewPostmarkClient(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "no-reply@example.com",
	}, email.WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = sender.SendEmail(context.Background(), validParams())
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
}

func TestPostmarkClient_SendEmailInvalidParams(t *testing.T) {
	t.Parallel()

	srv, received := postmarkServer(t, http.StatusOK, `{}`)
	sender, err := email.NewPostmarkClient(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "no-reply@example.com",
	}, email.WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = sender.SendEmail(context.Background(), email.SendEmailParams{})
	assert.ErrorIs(t, err, email.ErrInvalidParams)
	assert.Nil(t, received.Load())
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	sender := email.NewDevSender(dir, nil)

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var metaFile string
	for _, e := range entries {
		assert.Contains(t, e.Name(), "contact-created")
		if strings.HasSuffix(e.Name(), ".json") {
			metaFile = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, metaFile)

	raw, err := os.ReadFile(metaFile)
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "team@example.com", meta["send_to"])
	assert.Equal(t, "Olá", meta["body_text"])
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	err := email.NewDevSender(dir, nil).SendEmail(context.Background(), email.SendEmailParams{})
	assert.ErrorIs(t, err, email.ErrInvalidParams)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfig(t *testing.T) {
	t.Parallel()

	assert.False(t, email.Config{}.Enabled())
	assert.True(t, email.Config{NotifyEmail: "team@example.com"}.Enabled())
	assert.False(t, email.Config{}.UsePostmark())
	assert.True(t, email.Config{PostmarkServerToken: "x"}.UsePostmark())
}
