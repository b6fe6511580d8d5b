package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"

	"github.com/couchcryptid/zipcode-etl/internal/observability"
	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
)

// BatchLoader writes multiple records to a secondary destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []zipcode.Record) error
}

// Predicate selects the records an export writes. A nil Predicate selects all,
// matching store.Store.Filter.
type Predicate func(zipcode.Record) bool

// StatePredicate selects records in any of the given states. With no states
// it returns nil, so every record is exported.
func StatePredicate(states ...string) Predicate {
	if len(states) == 0 {
		return nil
	}
	return func(r zipcode.Record) bool {
		return slices.Contains(states, r.State)
	}
}

// Exporter writes records as export lines, optionally mirroring them in
// batches to a BatchLoader. Selection happens upstream, typically through
// store.Store.Filter.
type Exporter struct {
	out       io.Writer
	sink      BatchLoader
	batchSize int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewExporter creates an Exporter writing to out. sink may be nil.
func NewExporter(out io.Writer, sink BatchLoader, batchSize int, logger *slog.Logger, metrics *observability.Metrics) *Exporter {
	return &Exporter{
		out:       out,
		sink:      sink,
		batchSize: max(batchSize, 1),
		logger:    logger,
		metrics:   metrics,
	}
}

// Export writes every record from records, in order, and returns how many
// were written.
func (e *Exporter) Export(ctx context.Context, records iter.Seq[zipcode.Record]) (int, error) {
	w := bufio.NewWriter(e.out)
	var batch []zipcode.Record
	n := 0

	for rec := range records {
		if err := zipcode.Write(w, rec); err != nil {
			return n, fmt.Errorf("write record %s: %w", rec.Zip, err)
		}
		n++
		e.metrics.RecordsExported.Inc()

		if e.sink == nil {
			continue
		}
		batch = append(batch, rec)
		if len(batch) >= e.batchSize {
			if err := e.flushSink(ctx, batch); err != nil {
				return n, err
			}
			batch = nil
		}
	}

	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("flush export: %w", err)
	}
	if len(batch) > 0 {
		if err := e.flushSink(ctx, batch); err != nil {
			return n, err
		}
	}

	e.logger.Info("export complete", "records", n)
	return n, nil
}

func (e *Exporter) flushSink(ctx context.Context, batch []zipcode.Record) error {
	if err := e.sink.LoadBatch(ctx, batch); err != nil {
		e.metrics.SinkErrors.Inc()
		e.logger.Error("load batch failed", "error", err, "batch_size", len(batch))
		return fmt.Errorf("load batch: %w", err)
	}
	return nil
}
