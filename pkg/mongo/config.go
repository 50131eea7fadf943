package mongo

import (
	"strings"
	"time"
)

// Config represents the configuration for the database connection.
// ConnectionURL is not marked as required: a missing URI is reported at connect
// time as a configuration error so the process can still serve liveness probes.
type Config struct {
	ConnectionURL          string        `env:"MONGODB_URI"`                                       // ConnectionURL is the URI of the database.
	Database               string        `env:"MONGODB_DATABASE"`                                  // Database overrides the database named in the URI path.
	ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"5s"` // ServerSelectionTimeout bounds how long the driver looks for a suitable server.
	SocketTimeout          time.Duration `env:"MONGODB_SOCKET_TIMEOUT" envDefault:"45s"`          // SocketTimeout bounds a single socket read or write.
	ConnectTimeout         time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`         // ConnectTimeout is the timeout for opening a connection.
	MaxPoolSize            uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"10"`            // MaxPoolSize is the maximum number of pooled connections.
	MinPoolSize            uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`             // MinPoolSize is the minimum number of pooled connections.
	MaxConnIdleTime        time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"30s"`      // MaxConnIdleTime is how long a pooled connection may stay idle.
	RetryWrites            bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`           // RetryWrites specifies whether to retry write operations.
	RetryReads             bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`            // RetryReads specifies whether to retry read operations.
}

// DatabaseName returns the configured database, falling back to the path
// segment of the connection URI and finally to "test" like the driver does.
func (c Config) DatabaseName() string {
	if c.Database != "" {
		return c.Database
	}
	if name := databaseFromURI(c.ConnectionURL); name != "" {
		return name
	}
	return "test"
}

// Host returns the first seed host of the connection URI without resolving it.
func (c Config) Host() string {
	hosts, _ := splitURI(c.ConnectionURL)
	host, _, _ := strings.Cut(hosts, ",")
	return host
}

// databaseFromURI extracts "contacts" from "mongodb+srv://u:p@host/contacts?x=y".
// Multi-host URIs are not valid url.URL values, so the path is cut by hand.
func databaseFromURI(uri string) string {
	_, path := splitURI(uri)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

// splitURI returns the host list and the part after the slash that ends it,
// with scheme and credentials removed. Userinfo is only looked for before the
// first '/' or '?', so an '@' in the query string is not mistaken for it.
func splitURI(uri string) (hosts, path string) {
	_, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return "", ""
	}
	authority := rest
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		authority, rest = rest[:i], rest[i:]
	} else {
		rest = ""
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	path = strings.TrimPrefix(rest, "/")
	if strings.HasPrefix(rest, "?") {
		path = ""
	}
	return authority, path
}
