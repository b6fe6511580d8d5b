package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/zipcode-etl/internal/observability"
	"github.com/couchcryptid/zipcode-etl/internal/store"
	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
)

// ErrorPolicy decides what a load does with a line that fails to parse.
type ErrorPolicy int

const (
	// AbortOnError stops the load at the first bad line.
	AbortOnError ErrorPolicy = iota
	// SkipOnError logs the bad line and continues.
	SkipOnError
)

// Stats summarizes one load.
type Stats struct {
	Lines    int // data lines read, header excluded
	Stored   int
	Skipped  int // lines rejected under SkipOnError
	Blank    int
	Duration time.Duration
}

// Pipeline reads raw dataset lines into a store.
type Pipeline struct {
	dialect zipcode.Dialect
	policy  ErrorPolicy
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline for the given dialect and error policy.
func New(dialect zipcode.Dialect, policy ErrorPolicy, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		dialect: dialect,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a load has completed, or an error
// describing why the records are not yet available.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("zip code records have not been loaded yet")
	}
	return nil
}

// Load reads every line from r, discarding the first as the column header,
// and inserts each parsed record at the front of a new store. Blank lines are
// ignored. A parse failure either aborts the load or is skipped, depending on
// the pipeline's policy; an aborted load returns no store.
func (p *Pipeline) Load(ctx context.Context, r io.Reader) (*store.Store, Stats, error) {
	start := clock.Now()
	var stats Stats

	lines := NewLineReader(r)
	if _, err := lines.Next(); err != nil {
		if errors.Is(err, io.EOF) {
			p.finish(&stats, start, 0)
			return store.New(0), stats, nil
		}
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	s := store.New(0)
	for lineNo := 2; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read line %d: %w", lineNo, err)
		}
		stats.Lines++
		p.metrics.LinesRead.Inc()

		rec, err := zipcode.Parse(p.dialect, line)
		if err != nil {
			if errors.Is(err, zipcode.ErrEmptyLine) {
				stats.Blank++
				continue
			}
			var pe *zipcode.ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
			}
			p.metrics.ParseErrors.WithLabelValues(zipcode.Reason(err)).Inc()
			if p.policy == AbortOnError {
				return nil, stats, err
			}
			p.logger.Warn("parse failed, skipping line",
				"line", lineNo,
				"reason", zipcode.Reason(err),
				"error", err,
			)
			stats.Skipped++
			continue
		}

		s.InsertFront(rec)
		stats.Stored++
		p.metrics.RecordsStored.Inc()
	}

	p.finish(&stats, start, s.Len())
	return s, stats, nil
}

func (p *Pipeline) finish(stats *Stats, start time.Time, size int) {
	stats.Duration = clock.Since(start)
	p.metrics.LoadDuration.Observe(stats.Duration.Seconds())
	p.metrics.StoreSize.Set(float64(size))
	p.ready.Store(true)

	p.logger.Info("zip code records loaded",
		"dialect", p.dialect.Name,
		"lines", stats.Lines,
		"stored", stats.Stored,
		"skipped", stats.Skipped,
		"blank", stats.Blank,
		"duration", stats.Duration,
	)
}
