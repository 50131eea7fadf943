package environment

import "strings"

// Environment names the deployment the process runs in. It is read from
// NODE_ENV so existing deployments keep their settings.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
	Test        Environment = "test"
)

// Parse normalizes a raw NODE_ENV value. Unknown and empty values fall back
// to Development.
func Parse(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether error details must be hidden from clients.
func (e Environment) IsProduction() bool {
	return e == Production
}

// UnmarshalText lets caarlos0/env decode NODE_ENV directly into an Environment.
func (e *Environment) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}
