package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactdesk/pkg/config"
)

type sample struct {
	URI     string        `env:"SAMPLE_URI,notEmpty"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" envDefault:"5s"`
}

type other struct {
	Port int `env:"SAMPLE_PORT" envDefault:"3000"`
}

func TestLoad(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("SAMPLE_URI", "mongodb://localhost/contacts")

	var cfg sample
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "mongodb://localhost/contacts", cfg.URI)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	// Cached per type: later environment changes are not observed.
	t.Setenv("SAMPLE_URI", "mongodb://other/db")
	var again sample
	require.NoError(t, config.Load(&again))
	assert.Equal(t, cfg, again)

	var o other
	require.NoError(t, config.Load(&o))
	assert.Equal(t, 3000, o.Port)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("SAMPLE_URI", "")

	var cfg sample
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[sample](nil), config.ErrNilPointer)
}
