package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/contactdesk/pkg/environment"
	"github.com/dmitrymomot/contactdesk/pkg/logger"
	"github.com/dmitrymomot/contactdesk/pkg/mongo"
)

const (
	StatusConnected = "connected"
	StatusError     = "error"
)

// Database is what the reporter needs from the connector.
type Database interface {
	Ping(ctx context.Context) (mongo.ServerInfo, error)
	Stats(ctx context.Context) (mongo.Stats, error)
}

// DatabaseStatus describes the outcome of a database probe.
type DatabaseStatus struct {
	Status  string `json:"status"`
	Name    string `json:"name,omitempty"`
	Host    string `json:"host,omitempty"`
	Message string `json:"message,omitempty"`
}

// Report is the health check result. Database is only set for deep checks.
type Report struct {
	OK          bool                    `json:"ok"`
	Timestamp   time.Time               `json:"timestamp"`
	Environment environment.Environment `json:"environment"`
	Database    *DatabaseStatus         `json:"database,omitempty"`
}

// Diagnostics extends a deep check with store statistics.
type Diagnostics struct {
	OK          bool                    `json:"ok"`
	Timestamp   time.Time               `json:"timestamp"`
	Environment environment.Environment `json:"environment"`
	Database    *DatabaseStatus         `json:"database,omitempty"`
	Stats       *mongo.Stats            `json:"stats,omitempty"`
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.log = l
		}
	}
}

// Reporter answers liveness and database reachability probes.
type Reporter struct {
	db  Database
	env environment.Environment
	now func() time.Time
	log *slog.Logger
}

func NewReporter(db Database, env environment.Environment, opts ...Option) *Reporter {
	r := &Reporter{
		db:  db,
		env: env,
		now: time.Now,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report always succeeds for shallow checks and never touches the database
// then, so it stays usable as a liveness probe while the database is down.
// A deep check pings the database and reports OK=false when that fails.
func (r *Reporter) Report(ctx context.Context, deep bool) Report {
	rep := Report{
		OK:          true,
		Timestamp:   r.now().UTC(),
		Environment: r.env,
	}
	if !deep {
		return rep
	}

	rep.Database = r.probe(ctx)
	rep.OK = rep.Database.Status == StatusConnected
	return rep
}

// Diagnostics pings the database and collects dbStats. On failure the
// returned report carries the error status and err is the cause.
func (r *Reporter) Diagnostics(ctx context.Context) (Diagnostics, error) {
	diag := Diagnostics{
		Timestamp:   r.now().UTC(),
		Environment: r.env,
	}

	info, err := r.db.Ping(ctx)
	if err != nil {
		r.logFailure(ctx, "diagnostics ping failed", err)
		diag.Database = errorStatus(err)
		return diag, err
	}
	diag.Database = connectedStatus(info)

	stats, err := r.db.Stats(ctx)
	if err != nil {
		r.logFailure(ctx, "diagnostics stats failed", err)
		diag.Database = errorStatus(err)
		return diag, err
	}
	diag.Stats = &stats
	diag.OK = true
	return diag, nil
}

func (r *Reporter) probe(ctx context.Context) *DatabaseStatus {
	info, err := r.db.Ping(ctx)
	if err != nil {
		r.logFailure(ctx, "deep health check failed", err)
		return errorStatus(err)
	}
	return connectedStatus(info)
}

func (r *Reporter) logFailure(ctx context.Context, msg string, err error) {
	r.log.WarnContext(ctx, msg,
		logger.Component("health"),
		slog.String("kind", mongo.KindOf(err).String()),
		logger.Error(err),
	)
}

func connectedStatus(info mongo.ServerInfo) *DatabaseStatus {
	return &DatabaseStatus{Status: StatusConnected, Name: info.Name, Host: info.Host}
}

// errorStatus keeps the driver message but drops the connector's op prefix.
func errorStatus(err error) *DatabaseStatus {
	msg := err.Error()
	var e *mongo.Error
	if errors.As(err, &e) {
		msg = e.Message()
	}
	return &DatabaseStatus{Status: StatusError, Message: msg}
}
