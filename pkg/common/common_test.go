package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebugMuxHealth(t *testing.T) {
	ready := &atomic.Bool{}
	mux := NewDebugMux(ready)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", rec.Body.String())

	ready.Store(true)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestDebugMuxMetrics(t *testing.T) {
	mux := NewDebugMux(&atomic.Bool{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestLoadTimeoutConfig(t *testing.T) {
	t.Setenv(EnvDebugShutdownTimeout, "9")
	t.Setenv(EnvDebugHookTimeout, "750ms")
	t.Setenv(EnvDebugWriteTimeout, "nope")
	t.Setenv(EnvDebugIdleTimeout, "-2s")

	cfg := LoadTimeoutConfig(DefaultTimeoutConfig())
	assert.Equal(t, 9*time.Second, cfg.Shutdown)
	assert.Equal(t, 750*time.Millisecond, cfg.Hook)
	assert.Equal(t, DefaultTimeoutConfig().Write, cfg.Write)
	assert.Equal(t, DefaultTimeoutConfig().Idle, cfg.Idle)
}

func TestNewDebugServer(t *testing.T) {
	cfg := DefaultTimeoutConfig()
	mux := http.NewServeMux()
	srv := NewDebugServer(":9100", mux, cfg)
	assert.Equal(t, ":9100", srv.Addr)
	assert.Equal(t, cfg.ReadHeader, srv.ReadHeaderTimeout)
	assert.Equal(t, cfg.Write, srv.WriteTimeout)
	assert.Equal(t, cfg.Idle, srv.IdleTimeout)
}

func TestStartServerStopRunsHooks(t *testing.T) {
	srv := NewDebugServer("127.0.0.1:0", http.NewServeMux(), DefaultTimeoutConfig())

	calls := 0
	stop := StartServer(context.Background(), srv, "test server", DefaultTimeoutConfig(), func(ctx context.Context) error {
		calls++
		return nil
	}, nil)

	stop()
	stop()
	assert.Equal(t, 1, calls)
}
