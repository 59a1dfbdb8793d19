package zipcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	totalRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zipfinder_records_total",
		Help: "The total number of zip code records in the index",
	})
	totalCities = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zipfinder_cities_total",
		Help: "The number of distinct cities in the index",
	})
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zipfinder_load_duration_seconds",
		Help:    "Time spent reading and sorting the input file",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

// StreamRecords reads r line by line and calls emit for every parsed record.
// The first malformed line stops the stream with a *ParseError, lines are
// never skipped. Stops early if ctx is canceled or emit returns an error.
func StreamRecords(ctx context.Context, r io.Reader, cfg LoaderConfig, emit func(ZipRecord) error) error {
	if err := cfg.Parser.Validate(); err != nil {
		return err
	}

	lines := NewLineReader(r)
	if cfg.SkipHeader {
		if header, ok := lines.Next(); ok {
			zerolog.Ctx(ctx).Debug().Str("header", header).Msg("skipping header")
		}
	}

	for line := range lines.Lines() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := ParseLine(line, cfg.Parser)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = lines.Line()
			}
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}

	if err := lines.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lines.Line()+1, err)
	}
	return nil
}

// Load reads every record from r into a new Store and finalizes it.
func Load(ctx context.Context, r io.Reader, cfg LoaderConfig) (*Index, error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	store := NewStore(0)
	if err := StreamRecords(ctx, r, cfg, store.Insert); err != nil {
		return nil, err
	}
	idx := store.Finalize()

	elapsed := time.Since(start)
	loadDuration.Observe(elapsed.Seconds())
	totalRecords.Set(float64(idx.Len()))
	totalCities.Set(float64(len(idx.cities)))

	logger.Info().
		Int("records", idx.Len()).
		Int("cities", len(idx.cities)).
		Dur("elapsed", elapsed).
		Msg("zip code index loaded")
	return idx, nil
}
