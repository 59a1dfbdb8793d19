package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ShutdownHook is run after the server has been asked to stop and before it
// shuts down. A failing hook is logged, shutdown continues regardless.
type ShutdownHook func(ctx context.Context) error

// StartServer runs server in the background and returns a stop function that
// runs the hooks (in order) and then gracefully shuts the server down within
// cfg.Shutdown. Calling stop more than once is a no-op.
//
// Typical usage:
//
//	server := NewDebugServer(addr, NewDebugMux(ready), cfg)
//	stop := StartServer(ctx, server, "debug server", cfg)
//	defer stop()
func StartServer(ctx context.Context, server *http.Server, name string, cfg TimeoutConfig, hooks ...ShutdownHook) (stop func()) {
	logger := zerolog.Ctx(ctx)
	hookTimeout := cfg.Hook
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msgf("starting %s", name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msgf("%s listen error", name)
		}
	}()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Shutdown)
		defer cancel()

		for i, h := range hooks {
			if h == nil {
				continue
			}
			hCtx, hCancel := context.WithTimeout(shutdownCtx, hookTimeout)
			if err := h(hCtx); err != nil {
				logger.Warn().Err(err).Int("hook", i).Msg("shutdown hook failed")
			}
			hCancel()
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msgf("%s graceful shutdown failed", name)
		} else {
			logger.Debug().Msgf("%s shutdown complete", name)
		}
	}
}

// TimeoutConfig holds the debug server timeouts.
type TimeoutConfig struct {
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
	Hook       time.Duration
}

func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Write:      10 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   5 * time.Second,
		Hook:       2 * time.Second,
	}
}

// Env names read by LoadTimeoutConfig. Values are Go durations ("750ms",
// "3s") or a bare number of seconds.
const (
	EnvDebugReadHeaderTimeout = "ZIPFINDER_DEBUG_READ_HEADER_TIMEOUT"
	EnvDebugWriteTimeout      = "ZIPFINDER_DEBUG_WRITE_TIMEOUT"
	EnvDebugIdleTimeout       = "ZIPFINDER_DEBUG_IDLE_TIMEOUT"
	EnvDebugShutdownTimeout   = "ZIPFINDER_DEBUG_SHUTDOWN_TIMEOUT"
	EnvDebugHookTimeout       = "ZIPFINDER_DEBUG_HOOK_TIMEOUT"
)

// LoadTimeoutConfig overrides defaults from the environment. Unparsable or
// non-positive values keep the default.
func LoadTimeoutConfig(defaults TimeoutConfig) TimeoutConfig {
	for env, curr := range map[string]*time.Duration{
		EnvDebugReadHeaderTimeout: &defaults.ReadHeader,
		EnvDebugWriteTimeout:      &defaults.Write,
		EnvDebugIdleTimeout:       &defaults.Idle,
		EnvDebugShutdownTimeout:   &defaults.Shutdown,
		EnvDebugHookTimeout:       &defaults.Hook,
	} {
		if d, ok := parseTimeout(os.Getenv(env)); ok {
			*curr = d
		}
	}
	return defaults
}

func parseTimeout(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, n > 0
	}
	d, err := time.ParseDuration(v)
	return d, err == nil && d > 0
}

// NewDebugServer returns an http.Server for the metrics/health mux. There is
// no request body to read so only the header timeout limits reads.
func NewDebugServer(addr string, handler http.Handler, cfg TimeoutConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeader,
		WriteTimeout:      cfg.Write,
		IdleTimeout:       cfg.Idle,
	}
}
