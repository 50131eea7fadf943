package mongo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/contactdesk/pkg/logger"
)

// connectKey is the only key used with the singleflight group: there is one
// shared connection per Connector.
const connectKey = "connect"

// staleDisconnectTimeout bounds the teardown of a client that is being replaced.
const staleDisconnectTimeout = 5 * time.Second

// DialFunc opens a client and verifies it is usable.
type DialFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// Option configures a Connector.
type Option func(*Connector)

// WithDialer replaces the function used to open new clients.
func WithDialer(d DialFunc) Option {
	return func(c *Connector) {
		if d != nil {
			c.dial = d
		}
	}
}

// WithLogger sets the logger used for connection lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connector) {
		if l != nil {
			c.log = l
		}
	}
}

// Connector owns the process-wide mongo client. It hands out a cached client
// once connected and makes sure at most one dial runs at any time; callers that
// arrive while a dial is in flight share its outcome.
type Connector struct {
	cfg  Config
	dial DialFunc
	log  *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	client  *mongo.Client
	state   State
	lastErr error
	// gen is bumped by Disconnect; a dial that started under an older
	// generation must not publish its client.
	gen uint64
}

// NewConnector creates an idle Connector. No I/O is performed until the first
// call to EnsureConnected.
func NewConnector(cfg Config, opts ...Option) *Connector {
	c := &Connector{
		cfg:   cfg,
		dial:  Dial,
		log:   slog.New(slog.DiscardHandler),
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the connector was built with.
func (c *Connector) Config() Config {
	return c.cfg
}

// State returns the current lifecycle state.
func (c *Connector) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LastError returns the error of the most recent failed attempt, if any.
func (c *Connector) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// EnsureConnected returns a ready client, dialing if necessary.
//
// A Ready connector answers without I/O. Otherwise the caller joins the
// in-flight attempt or starts a new one. The wait is bounded by ctx only: if
// ctx ends first the caller gets a connection error while the attempt keeps
// running for the remaining callers, limited by the driver timeouts.
// Failures are not retried here.
func (c *Connector) EnsureConnected(ctx context.Context) (*mongo.Client, error) {
	if client := c.readyClient(); client != nil {
		return client, nil
	}

	// The attempt outlives any single caller, so it must not inherit its cancellation.
	dialCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(connectKey, func() (any, error) {
		return c.connect(dialCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, newError(KindConnection, "connect", ctx.Err())
	}
}

// Database returns the configured database on a ready client.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.EnsureConnected(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.cfg.DatabaseName()), nil
}

// Invalidate marks client as unusable so the next EnsureConnected dials again.
// It is a no-op unless client is the one currently cached. The old client is
// disconnected by the next attempt.
func (c *Connector) Invalidate(ctx context.Context, client *mongo.Client, cause error) {
	c.mu.Lock()
	if c.state != StateReady || client == nil || c.client != client {
		c.mu.Unlock()
		return
	}
	c.state = StateFailed
	c.lastErr = cause
	c.mu.Unlock()

	c.log.WarnContext(ctx, "mongo connection invalidated",
		logger.Component("mongo"),
		logger.Error(cause),
	)
}

// Disconnect closes the cached client and returns the connector to Idle.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.state = StateIdle
	c.lastErr = nil
	c.gen++
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return newError(KindConnection, "disconnect", err)
	}
	c.log.InfoContext(ctx, "mongo disconnected", logger.Component("mongo"))
	return nil
}

func (c *Connector) readyClient() *mongo.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == StateReady && c.client != nil {
		return c.client
	}
	return nil
}

// connect runs inside the singleflight group.
func (c *Connector) connect(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	// A previous flight may have finished between the fast-path check and now.
	if c.state == StateReady && c.client != nil {
		client := c.client
		c.mu.Unlock()
		return client, nil
	}
	stale := c.client
	c.client = nil
	c.state = StateConnecting
	gen := c.gen
	c.mu.Unlock()

	if c.cfg.ConnectionURL == "" {
		err := newError(KindConfiguration, "connect", ErrMissingURI)
		c.fail(ctx, gen, err)
		return nil, err
	}

	if stale != nil {
		c.teardown(ctx, stale)
	}

	start := time.Now()
	c.log.DebugContext(ctx, "connecting to mongo", logger.Component("mongo"))

	client, err := c.dial(ctx, c.cfg)
	if err != nil {
		cerr := newError(KindConnection, "connect", err)
		c.fail(ctx, gen, cerr)
		return nil, cerr
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		c.log.WarnContext(ctx, "mongo disconnected during connect, dropping new client",
			logger.Component("mongo"),
		)
		c.teardown(ctx, client)
		return nil, newError(KindConnection, "connect", ErrDisconnected)
	}
	c.client = client
	c.state = StateReady
	c.lastErr = nil
	c.mu.Unlock()

	c.log.InfoContext(ctx, "mongo connected",
		logger.Component("mongo"),
		logger.Duration(time.Since(start)),
		slog.String("database", c.cfg.DatabaseName()),
	)
	return client, nil
}

func (c *Connector) fail(ctx context.Context, gen uint64, err error) {
	c.mu.Lock()
	if c.gen == gen {
		c.state = StateFailed
		c.lastErr = err
	}
	c.mu.Unlock()

	c.log.ErrorContext(ctx, "mongo connection failed",
		logger.Component("mongo"),
		logger.Error(err),
	)
}

func (c *Connector) teardown(ctx context.Context, client *mongo.Client) {
	ctx, cancel := context.WithTimeout(ctx, staleDisconnectTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		c.log.WarnContext(ctx, "failed to disconnect stale mongo client",
			logger.Component("mongo"),
			logger.Error(err),
		)
	}
}

// ClientOptions translates Config into driver options.
func ClientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads)

	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	// The v2 driver has no per-socket timeout; the client-side operation
	// timeout is the closest equivalent.
	if cfg.SocketTimeout > 0 {
		opts.SetTimeout(cfg.SocketTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}
	return opts
}

// Dial is the default DialFunc: it opens a client and pings the primary so a
// Ready connector always holds a client that answered at least once.
func Dial(ctx context.Context, cfg Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ClientOptions(cfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return client, nil
}
