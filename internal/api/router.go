package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/contactdesk/handler"
	"github.com/dmitrymomot/contactdesk/internal/contact"
	"github.com/dmitrymomot/contactdesk/pkg/clientip"
	"github.com/dmitrymomot/contactdesk/pkg/environment"
	"github.com/dmitrymomot/contactdesk/pkg/health"
	"github.com/dmitrymomot/contactdesk/pkg/httpserver"
	"github.com/dmitrymomot/contactdesk/pkg/mongo"
	"github.com/dmitrymomot/contactdesk/pkg/ratelimiter"
	"github.com/dmitrymomot/contactdesk/pkg/requestid"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Config   Config
	Logger   *slog.Logger
	DB       mongo.Ensurer
	Reporter *health.Reporter
	Contacts *contact.Service

	// ContactLimiter throttles contact form submissions per client IP. Nil disables it.
	ContactLimiter ratelimiter.Limiter

	// ReadinessChecks back /api/ready.
	ReadinessChecks []func(context.Context) error
}

// NewRouter wires middlewares and routes.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	errorHandler := handler.NewErrorHandler(log)

	r := chi.NewRouter()
	// chi's Recoverer only guards the middlewares ahead of Recoverer(log),
	// which answers handler panics with the JSON envelope.
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(d.Config.Environment),
		AccessLog(log),
		Recoverer(log),
		SecurityHeaders,
		CORS(d.Config.AllowedOrigins()),
	)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/", index(d.Config))
	r.Get("/api/health", healthHandler(d.Reporter))
	r.Get("/api/db-test", dbTestHandler(d.Reporter))
	r.Get("/api/ready", httpserver.ReadinessHandler(log, d.ReadinessChecks...))

	gate := mongo.NewGate(d.DB,
		mongo.WithTimeout(d.Config.GateTimeout),
		mongo.WithRejectHandler(gateReject(log)),
	)

	contactOpts := []contact.HTTPOption{contact.WithErrorHandler(errorHandler)}
	if d.ContactLimiter != nil {
		contactOpts = append(contactOpts, contact.WithCreateLimiter(
			ratelimiter.Middleware(d.ContactLimiter, clientip.Key,
				ratelimiter.WithDenyHandler(rateLimited),
			),
		))
	}

	r.Route("/api/contacts", func(r chi.Router) {
		r.Use(gate.Middleware)
		contact.Routes(d.Contacts, contactOpts...)(r)
	})

	return r
}
