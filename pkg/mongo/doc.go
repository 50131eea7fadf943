// Package mongo manages the single MongoDB connection a contactdesk process
// shares between requests.
//
// The Connector is built once at startup and handed to everything that needs
// the database. Nothing is dialed until the first EnsureConnected call, which
// matters for serverless deployments where an instance may only ever answer
// liveness probes. Once connected the client is cached and later calls return
// it without I/O. Concurrent callers on a cold connector share one dial
// through a singleflight group, so a burst of requests after a cold start
// opens exactly one client.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	conn := mongo.NewConnector(cfg, mongo.WithLogger(log))
//	defer conn.Disconnect(context.Background())
//
//	gate := mongo.NewGate(conn, mongo.WithTimeout(10*time.Second))
//	r.With(gate.Middleware).Post("/api/contacts", createContact)
//
// # Error Handling
//
// Every failure is a *Error carrying a Kind. A missing MONGODB_URI is a
// KindConfiguration error and is never dialed; driver failures are
// KindConnection, KindPing or KindStats. The kinds match the package
// sentinels through errors.Is:
//
//	if errors.Is(err, mongo.ErrConfiguration) {
//		// MONGODB_URI is not set
//	}
//
// Failed attempts are not retried by the connector: the next caller starts a
// fresh one.
package mongo
