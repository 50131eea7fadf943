package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactdesk/internal/contact"
	"github.com/dmitrymomot/contactdesk/pkg/email"
)

type captureSender struct {
	sent []email.SendEmailParams
	err  error
}

func (s *captureSender) SendEmail(_ context.Context, p email.SendEmailParams) error {
	s.sent = append(s.sent, p)
	return s.err
}

func TestMailNotifier_ContactCreated(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	n := contact.NewMailNotifier(sender, "team@example.com")

	err := n.ContactCreated(context.Background(), contact.Contact{
		Name:      "Ana <Souza>",
		Email:     "ana@example.com",
		Phone:     "+55 11 98765-4321",
		Subject:   "Orçamento",
		Message:   "Gostaria de um orçamento.",
		CreatedAt: fixedNow,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "team@example.com", msg.SendTo)
	assert.Equal(t, "ana@example.com", msg.ReplyTo)
	assert.Equal(t, "Novo contato: Orçamento", msg.Subject)
	assert.Equal(t, "contact-created", msg.Tag)
	assert.Contains(t, msg.BodyText, "Telefone: +55 11 98765-4321")
	assert.Contains(t, msg.BodyText, "17/10/2026 09:30")
	assert.Contains(t, msg.BodyHTML, "Ana &lt;Souza&gt;")
	assert.NotContains(t, msg.BodyHTML, "<Souza>")
}

func TestMailNotifier_SubjectFallsBackToName(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	n := contact.NewMailNotifier(sender, "team@example.com")

	require.NoError(t, n.ContactCreated(context.Background(), contact.Contact{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Olá, tudo bem?",
	}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Novo contato de Ana", sender.sent[0].Subject)
	assert.NotContains(t, sender.sent[0].BodyText, "Telefone")
}

func TestMailNotifier_SendError(t *testing.T) {
	t.Parallel()

	sender := &captureSender{err: email.ErrFailedToSendEmail}
	err := contact.NewMailNotifier(sender, "team@example.com").
		ContactCreated(context.Background(), contact.Contact{Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
}

func TestService_CreateNotifies(t *testing.T) {
	t.Parallel()

	notified := make(chan contact.Contact, 1)
	svc := contact.NewService(&memStore{},
		contact.WithServiceClock(func() time.Time { return fixedNow }),
		contact.WithNotifier(contact.NotifierFunc(func(ctx context.Context, c contact.Contact) error {
			notified <- c
			return errors.New("smtp down")
		})),
	)

	ctx, cancel := context.WithCancel(context.Background())
	c, err := svc.Create(ctx, validInput(), contact.Origin{})
	require.NoError(t, err)
	cancel()

	select {
	case got := <-notified:
		assert.Equal(t, c.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestService_CreateDoesNotNotifyOnFailure(t *testing.T) {
	t.Parallel()

	called := make(chan struct{}, 1)
	svc := contact.NewService(&memStore{err: errors.New("write failed")},
		contact.WithNotifier(contact.NotifierFunc(func(context.Context, contact.Contact) error {
			called <- struct{}{}
			return nil
		})),
	)

	_, err := svc.Create(context.Background(), validInput(), contact.Origin{})
	require.Error(t, err)

	select {
	case <-called:
		t.Fatal("notifier called for a failed create")
	case <-time.After(50 * time.Millisecond):
	}
}
