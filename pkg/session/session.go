// Package session runs the interactive query loop: read a city name, print
// its zip codes, repeat until the query stream ends.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/matst80/zip-finder/pkg/zipcode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	noLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zipfinder_lookups_total",
		Help: "The total number of city lookups by outcome",
	}, []string{"outcome"})
)

// Resolver answers exact city queries. *zipcode.Index implements it.
type Resolver interface {
	Lookup(city string) ([]string, bool)
}

type Options struct {
	Format Format
}

type Session struct {
	ID       uuid.UUID
	resolver Resolver
	in       io.Reader
	out      io.Writer
	format   Format
}

func New(resolver Resolver, in io.Reader, out io.Writer, opts Options) *Session {
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	return &Session{
		ID:       uuid.New(),
		resolver: resolver,
		in:       in,
		out:      out,
		format:   format,
	}
}

// Run prompts once and answers one line per query until in reaches end of
// input. Every line, empty ones included, is a query.
func (s *Session) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("session", s.ID.String()).Logger()

	if err := writePrompt(s.out, s.format); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}

	queries := zipcode.NewLineReader(s.in)
	served := 0
	for city := range queries.Lines() {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := s.Query(city)
		if err := writeResult(s.out, s.format, res); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		served++
		logger.Debug().Str("city", city).Int("zips", len(res.Zips)).Bool("found", res.Found).Msg("lookup")
	}
	if err := queries.Err(); err != nil {
		return fmt.Errorf("read query: %w", err)
	}

	logger.Info().Int("queries", served).Msg("query input closed")
	return nil
}

// Query resolves a single city name.
func (s *Session) Query(city string) Result {
	zips, found := s.resolver.Lookup(city)
	if found {
		noLookups.WithLabelValues("found").Inc()
	} else {
		noLookups.WithLabelValues("miss").Inc()
	}
	if zips == nil {
		zips = []string{}
	}
	return Result{City: city, Zips: zips, Found: found}
}
