package mongo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactdesk/pkg/mongo"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mongo.KindUnknown, mongo.KindOf(nil))
	assert.Equal(t, mongo.KindUnknown, mongo.KindOf(errors.New("plain")))

	err := &mongo.Error{Kind: mongo.KindPing, Op: "ping", Err: errors.New("timeout")}
	assert.Equal(t, mongo.KindPing, mongo.KindOf(fmt.Errorf("wrapped: %w", err)))
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	cause := errors.New("server selection timeout")
	err := &mongo.Error{Kind: mongo.KindConnection, Op: "connect", Err: cause}

	assert.ErrorIs(t, err, mongo.ErrConnection)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, mongo.ErrPing)
	assert.Equal(t, "server selection timeout", err.Message())
	assert.Equal(t, "mongo connect: connection error: server selection timeout", err.Error())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "configuration", mongo.KindConfiguration.String())
	assert.Equal(t, "connection", mongo.KindConnection.String())
	assert.Equal(t, "ping", mongo.KindPing.String())
	assert.Equal(t, "stats", mongo.KindStats.String())
	assert.Equal(t, "unknown", mongo.Kind(42).String())
	assert.Equal(t, "ready", mongo.StateReady.String())
}
