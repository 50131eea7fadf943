package mongo

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Ensurer is the part of Connector the Gate depends on.
type Ensurer interface {
	EnsureConnected(ctx context.Context) (*mongo.Client, error)
}

// Exemption reports whether a request may skip the connection check.
type Exemption func(method, path string) bool

// RejectHandler writes the response for a request the Gate turned away.
type RejectHandler func(w http.ResponseWriter, r *http.Request, err error)

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithExemption exempts an exact method and path. An empty method matches any.
func WithExemption(method, path string) GateOption {
	return WithExemptionFunc(func(m, p string) bool {
		return (method == "" || strings.EqualFold(method, m)) && p == path
	})
}

// WithExemptionFunc adds a custom exemption rule.
func WithExemptionFunc(fn Exemption) GateOption {
	return func(g *Gate) {
		if fn != nil {
			g.exemptions = append(g.exemptions, fn)
		}
	}
}

// WithTimeout bounds how long a request waits for a connection.
func WithTimeout(d time.Duration) GateOption {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRejectHandler overrides the default 503 response.
func WithRejectHandler(h RejectHandler) GateOption {
	return func(g *Gate) {
		if h != nil {
			g.reject = h
		}
	}
}

// Gate keeps requests that need the database away from handlers until a
// connection is ready. Lightweight probes are let through untouched.
type Gate struct {
	conn       Ensurer
	exemptions []Exemption
	timeout    time.Duration
	reject     RejectHandler
}

// DefaultGateTimeout caps the wait for a connection when no timeout is set.
const DefaultGateTimeout = 15 * time.Second

// NewGate creates a Gate. Shallow health checks, the root endpoint and CORS
// preflight requests are exempt by default.
func NewGate(conn Ensurer, opts ...GateOption) *Gate {
	g := &Gate{
		conn:    conn,
		timeout: DefaultGateTimeout,
		reject:  defaultReject,
		exemptions: []Exemption{
			readOnly("/api/health"),
			readOnly("/"),
			func(method, _ string) bool { return method == http.MethodOptions },
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Admit returns nil when the request may continue. Exempt requests never
// reach the connector.
func (g *Gate) Admit(ctx context.Context, method, path string) error {
	for _, exempt := range g.exemptions {
		if exempt(method, path) {
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.conn.EnsureConnected(ctx)
	return err
}

// Middleware applies Admit to every request.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.Admit(r.Context(), r.Method, r.URL.Path); err != nil {
			g.reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func readOnly(path string) Exemption {
	return func(method, p string) bool {
		return p == path && (method == http.MethodGet || method == http.MethodHead)
	}
}

func defaultReject(w http.ResponseWriter, _ *http.Request, _ error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Banco de dados indisponível",
	})
}
