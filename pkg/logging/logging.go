package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EMPTY   = ""
	JSON    = "json"
	CONSOLE = "console"
	SERVICE = "service"
)

type Config struct {
	Level   string
	Format  string
	Output  io.Writer
	Service string
}

// New builds a zerolog logger. Diagnostics go to stderr by default so stdout
// stays free for query results.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Format == EMPTY {
		cfg.Format = CONSOLE
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Format != JSON {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339, NoColor: true}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != EMPTY {
		ctx = ctx.Str(SERVICE, cfg.Service)
	}
	return ctx.Logger()
}
