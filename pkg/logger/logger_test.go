package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactdesk/pkg/environment"
	"github.com/dmitrymomot/contactdesk/pkg/logger"
)

func TestNew_ProductionIsJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithEnvironment(environment.Production, "contactdesk"),
		logger.WithOutput(buf),
	)
	log.Debug("hidden")
	log.Info("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "contactdesk", entry["service"])
	assert.Equal(t, "production", entry["env"])
}

func TestNew_DevelopmentIsText(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithEnvironment(environment.Development, "svc"),
		logger.WithOutput(buf),
	)
	log.Debug("msg")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "service=svc")
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	type key struct{}
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(key{}).(string); ok {
				return slog.String("trace", v), true
			}
			return slog.Attr{}, false
		}),
	)

	ctx := context.WithValue(context.Background(), key{}, "abc")
	log.With("a", 1).WithGroup("g").InfoContext(ctx, "msg")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(1), entry["a"])
	g, ok := entry["g"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", g["trace"])
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "req-1", logger.RequestID("req-1").Value.String())
	assert.Equal(t, 1.5, logger.Duration(1500*time.Microsecond).Value.Float64())
	assert.Equal(t, int64(503), logger.StatusCode(503).Value.Int64())
	assert.Equal(t, "http", logger.HTTPRequest("GET", "/").Key)
	assert.Equal(t, "mongo", logger.Component("mongo").Value.String())
	assert.True(t, logger.ContactID("").Equal(slog.Attr{}))
}
