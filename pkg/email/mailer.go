package email

import (
	"context"
	"errors"

	"github.com/dmitrymomot/contactdesk/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`            // Email address of the recipient
	ReplyTo  string `json:"reply_to,omitempty"` // Optional, defaults to the sender
	Subject  string `json:"subject"`            // Subject of the email
	BodyHTML string `json:"body_html"`          // HTML body of the email
	BodyText string `json:"body_text"`          // Plain text alternative
	Tag      string `json:"tag,omitempty"`      // Optional
}

// Validate checks the recipient, the subject and that at least one body is set.
func (p SendEmailParams) Validate() error {
	err := validator.Apply(
		validator.Required("send_to", p.SendTo),
		validator.When(p.SendTo != "", validator.Email("send_to", p.SendTo)),
		validator.When(p.ReplyTo != "", validator.Email("reply_to", p.ReplyTo)),
		validator.Required("subject", p.Subject),
		validator.When(p.BodyText == "", validator.Required("body_html", p.BodyHTML)),
	)
	if err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}
