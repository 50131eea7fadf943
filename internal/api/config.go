package api

import (
	"strings"
	"time"

	"github.com/dmitrymomot/contactdesk/pkg/environment"
)

// Config holds the application level settings.
type Config struct {
	Environment         environment.Environment `env:"NODE_ENV" envDefault:"development"`
	ServiceName         string                  `env:"SERVICE_NAME" envDefault:"contactdesk"`
	Version             string                  `env:"APP_VERSION" envDefault:"1.0.0"`
	FrontendURL         string                  `env:"FRONTEND_URL"`
	GateTimeout         time.Duration           `env:"GATE_TIMEOUT" envDefault:"15s"`
	ContactRateLimit    int                     `env:"CONTACT_RATE_LIMIT" envDefault:"5"`
	ContactRateInterval time.Duration           `env:"CONTACT_RATE_INTERVAL" envDefault:"1m"`
}

// AllowedOrigins is FRONTEND_URL (comma separated) in production and any
// origin elsewhere.
func (c Config) AllowedOrigins() []string {
	if !c.Environment.IsProduction() {
		return []string{"*"}
	}
	var origins []string
	for origin := range strings.SplitSeq(c.FrontendURL, ",") {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
