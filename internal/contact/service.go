package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/contactdesk/pkg/logger"
	"github.com/dmitrymomot/contactdesk/pkg/sanitizer"
	"github.com/dmitrymomot/contactdesk/pkg/validator"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	maxNameLen    = 100
	maxEmailLen   = 254
	maxPhoneLen   = 30
	maxSubjectLen = 150
	minMessageLen = 10
	maxMessageLen = 5000
)

// CreateInput is the public contact form payload.
type CreateInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Origin describes who submitted a contact.
type Origin struct {
	IP        string
	UserAgent string
}

// ListInput is the raw query of a list request.
type ListInput struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type ServiceOption func(*Service)

func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNotifier is called in the background after every successful Create.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service holds the contact use cases.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
	log      *slog.Logger
}

func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	singleLine = sanitizer.Compose(sanitizer.StripHTML, sanitizer.RemoveControlChars, sanitizer.SingleLine)
	multiLine  = sanitizer.Compose(sanitizer.StripHTML, sanitizer.NormalizeNewlines, sanitizer.RemoveControlChars, sanitizer.Trim)
	phone      = sanitizer.Compose(sanitizer.KeepPhoneChars, sanitizer.SingleLine)
)

// Sanitize normalizes a form submission.
func (in CreateInput) Sanitize() CreateInput {
	return CreateInput{
		Name:    singleLine(in.Name),
		Email:   sanitizer.Email(in.Email),
		Phone:   phone(in.Phone),
		Subject: singleLine(in.Subject),
		Message: multiLine(in.Message),
	}
}

// Validate expects a sanitized input.
func (in CreateInput) Validate() error {
	return validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, maxNameLen),
		validator.Required("email", in.Email),
		validator.When(in.Email != "", validator.Email("email", in.Email)),
		validator.MaxLen("email", in.Email, maxEmailLen),
		validator.MaxLen("phone", in.Phone, maxPhoneLen),
		validator.MaxLen("subject", in.Subject, maxSubjectLen),
		validator.Required("message", in.Message),
		validator.When(in.Message != "", validator.MinLen("message", in.Message, minMessageLen)),
		validator.MaxLen("message", in.Message, maxMessageLen),
	)
}

// Create stores a new contact with status "novo".
func (s *Service) Create(ctx context.Context, in CreateInput, origin Origin) (Contact, error) {
	in = in.Sanitize()
	if err := in.Validate(); err != nil {
		return Contact{}, err
	}

	now := s.now().UTC()
	c := Contact{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    StatusNew,
		IP:        origin.IP,
		UserAgent: origin.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, &c); err != nil {
		return Contact{}, err
	}

	s.log.InfoContext(ctx, "contact created",
		logger.Component("contact"),
		logger.ContactID(c.ID.Hex()),
	)
	if s.notifier != nil {
		go s.notify(context.WithoutCancel(ctx), c)
	}
	return c, nil
}

// notify runs detached from the request; failures are only logged.
func (s *Service) notify(ctx context.Context, c Contact) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.ContactCreated(ctx, c); err != nil {
		s.log.ErrorContext(ctx, "contact notification failed",
			logger.Component("contact"),
			logger.ContactID(c.ID.Hex()),
			logger.Error(err),
		)
	}
}

func (s *Service) Get(ctx context.Context, id string) (Contact, error) {
	return s.store.FindByID(ctx, id)
}

// List returns one page of contacts. Page and limit fall back to 1 and
// DefaultPageSize when not set.
func (s *Service) List(ctx context.Context, in ListInput) (Page, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = DefaultPageSize
	}
	status := Status(sanitizer.ToLower(sanitizer.Trim(in.Status)))

	if err := validator.Apply(
		validator.When(status != "", validator.OneOf("status", status, Statuses...)),
		validator.Between("page", in.Page, 1, 1<<20),
		validator.Between("limit", in.Limit, 1, MaxPageSize),
	); err != nil {
		return Page{}, err
	}

	f := Filter{Status: status, Page: in.Page, Limit: in.Limit}
	items, total, err := s.store.List(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return newPage(items, total, f), nil
}

// UpdateStatus moves a contact to another status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Contact, error) {
	status = Status(sanitizer.ToLower(sanitizer.Trim(string(status))))
	if err := validator.Apply(
		validator.Required("status", string(status)),
		validator.When(status != "", validator.OneOf("status", status, Statuses...)),
	); err != nil {
		return Contact{}, err
	}

	c, err := s.store.UpdateStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return Contact{}, err
	}

	s.log.InfoContext(ctx, "contact status updated",
		logger.Component("contact"),
		logger.ContactID(id),
		slog.String("status", string(status)),
	)
	return c, nil
}
