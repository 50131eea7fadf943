package mongo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	driver "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/contactdesk/pkg/mongo"
)

type fakeEnsurer struct {
	calls atomic.Int32
	err   error
	block bool
}

func (f *fakeEnsurer) EnsureConnected(ctx context.Context) (*driver.Client, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, f.err
}

func TestGate_Admit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		method    string
		path      string
		wantCalls int32
	}{
		{name: "shallow health check", method: http.MethodGet, path: "/api/health", wantCalls: 0},
		{name: "head health check", method: http.MethodHead, path: "/api/health", wantCalls: 0},
		{name: "root metadata", method: http.MethodGet, path: "/", wantCalls: 0},
		{name: "preflight", method: http.MethodOptions, path: "/api/contacts", wantCalls: 0},
		{name: "create contact", method: http.MethodPost, path: "/api/contacts", wantCalls: 1},
		{name: "list contacts", method: http.MethodGet, path: "/api/contacts", wantCalls: 1},
		{name: "post to health", method: http.MethodPost, path: "/api/health", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conn := &fakeEnsurer{}
			gate := mongo.NewGate(conn)

			require.NoError(t, gate.Admit(context.Background(), tt.method, tt.path))
			assert.Equal(t, tt.wantCalls, conn.calls.Load())
		})
	}
}

func TestGate_AdmitPropagatesConnectorError(t *testing.T) {
	t.Parallel()

	connErr := errors.New("unreachable")
	gate := mongo.NewGate(&fakeEnsurer{err: connErr})

	err := gate.Admit(context.Background(), http.MethodPost, "/api/contacts")
	assert.ErrorIs(t, err, connErr)
}

func TestGate_Timeout(t *testing.T) {
	t.Parallel()

	gate := mongo.NewGate(&fakeEnsurer{block: true}, mongo.WithTimeout(10*time.Millisecond))

	start := time.Now()
	err := gate.Admit(context.Background(), http.MethodGet, "/api/contacts")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGate_CustomExemption(t *testing.T) {
	t.Parallel()

	conn := &fakeEnsurer{err: errors.New("down")}
	gate := mongo.NewGate(conn, mongo.WithExemption("", "/metrics"))

	require.NoError(t, gate.Admit(context.Background(), http.MethodPost, "/metrics"))
	assert.Equal(t, int32(0), conn.calls.Load())
}

func TestGate_Middleware(t *testing.T) {
	t.Parallel()

	t.Run("rejects with 503 when connector fails", func(t *testing.T) {
		t.Parallel()

		gate := mongo.NewGate(&fakeEnsurer{err: errors.New("down")})
		var reached bool
		h := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contacts", nil))

		assert.False(t, reached)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Banco de dados indisponível"}`, rec.Body.String())
	})

	t.Run("continues when connector is ready", func(t *testing.T) {
		t.Parallel()

		gate := mongo.NewGate(&fakeEnsurer{})
		h := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contacts", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("custom reject handler receives the error", func(t *testing.T) {
		t.Parallel()

		connErr := errors.New("down")
		var got error
		gate := mongo.NewGate(&fakeEnsurer{err: connErr}, mongo.WithRejectHandler(
			func(w http.ResponseWriter, r *http.Request, err error) {
				got = err
				w.WriteHeader(http.StatusTeapot)
			},
		))
		h := gate.Middleware(http.NotFoundHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contacts/1", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.ErrorIs(t, got, connErr)
	})
}
