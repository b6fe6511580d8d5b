// Package query answers city-name lookups against a loaded store.
package query

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/zipcode-etl/internal/observability"
	"github.com/couchcryptid/zipcode-etl/internal/pipeline"
	"github.com/couchcryptid/zipcode-etl/internal/store"
)

// Query sources, used as the metrics label.
const (
	SourceStdin = "stdin"
	SourceHTTP  = "http"
)

// Engine looks up ZIP codes by exact city name. The store is expected to be
// sorted by city and must not be modified while the engine is in use.
type Engine struct {
	store   *store.Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine over s.
func New(s *store.Store, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{store: s, logger: logger, metrics: metrics}
}

// Lookup scans the whole store and returns the ZIP code of every record whose
// city equals city exactly, in store order. No match returns nil.
func (e *Engine) Lookup(city string) []string {
	var zips []string
	for rec := range e.store.All() {
		if rec.City == city {
			zips = append(zips, rec.Zip)
		}
	}
	return zips
}

// LookupFrom is Lookup with the query counted against source.
func (e *Engine) LookupFrom(source, city string) []string {
	zips := e.Lookup(city)
	e.metrics.Queries.WithLabelValues(source).Inc()
	e.metrics.QueryMatches.Observe(float64(len(zips)))
	return zips
}

// Run reads one city per line from queries until end of input and writes the
// matching ZIP codes to out, one per line. Blank lines are ignored. Output is
// flushed after every query so interactive users see results immediately.
func (e *Engine) Run(ctx context.Context, queries io.Reader, out io.Writer) error {
	lines := pipeline.NewLineReader(queries)
	w := bufio.NewWriter(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		city, err := lines.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read query: %w", err)
		}
		if city == "" {
			continue
		}

		zips := e.LookupFrom(SourceStdin, city)
		e.logger.Debug("city lookup", "city", city, "matches", len(zips))
		for _, zip := range zips {
			if _, err := w.WriteString(zip + "\n"); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
}
