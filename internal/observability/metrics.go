package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for loading,
// exporting, and querying ZIP code records.
type Metrics struct {
	LinesRead     prometheus.Counter
	RecordsStored prometheus.Counter
	ParseErrors   *prometheus.CounterVec // labels: reason={empty_line,header_row,truncated_record,invalid_numeric,unknown}
	StoreSize     prometheus.Gauge
	LoadDuration  prometheus.Histogram

	RecordsExported prometheus.Counter
	SinkErrors      prometheus.Counter

	Queries      *prometheus.CounterVec // labels: source={stdin,http}
	QueryMatches prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zipcode",
			Name:      "lines_read_total",
			Help:      "Total data lines read from the input file, header excluded.",
		}),
		RecordsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zipcode",
			Name:      "records_stored_total",
			Help:      "Total records parsed and inserted into the store.",
		}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zipcode",
			Name:      "parse_errors_total",
			Help:      "Lines that could not be parsed, by reason.",
		}, []string{"reason"}),
		StoreSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zipcode",
			Name:      "store_records",
			Help:      "Number of records currently held in memory.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zipcode",
			Name:      "load_duration_seconds",
			Help:      "Duration of reading and parsing a complete input file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zipcode",
			Name:      "records_exported_total",
			Help:      "Total records written by bulk export.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zipcode",
			Name:      "sink_errors_total",
			Help:      "Failed batch writes to secondary export sinks.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zipcode",
			Name:      "queries_total",
			Help:      "City lookups answered, by source.",
		}, []string{"source"}),
		QueryMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zipcode",
			Name:      "query_matches",
			Help:      "Number of ZIP codes returned per city lookup.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}

	prometheus.MustRegister(
		m.LinesRead,
		m.RecordsStored,
		m.ParseErrors,
		m.StoreSize,
		m.LoadDuration,
		m.RecordsExported,
		m.SinkErrors,
		m.Queries,
		m.QueryMatches,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LinesRead:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zipcode", Name: "lines_read_total"}),
		RecordsStored:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zipcode", Name: "records_stored_total"}),
		ParseErrors:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "zipcode", Name: "parse_errors_total"}, []string{"reason"}),
		StoreSize:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "zipcode", Name: "store_records"}),
		LoadDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "zipcode", Name: "load_duration_seconds"}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zipcode", Name: "records_exported_total"}),
		SinkErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "zipcode", Name: "sink_errors_total"}),
		Queries:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "zipcode", Name: "queries_total"}, []string{"source"}),
		QueryMatches:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "zipcode", Name: "query_matches"}),
	}
}
