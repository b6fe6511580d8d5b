// Command zipexport reads a ZIP code CSV file and writes every record back
// out in the simplified six-column form.
//
// Usage:
//
//	zipexport [flags] input_file [output_file]
//
// Without output_file the records are written to stdout. Records come out in
// store order, most recently read first, unless -sort-city is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/couchcryptid/zipcode-etl/internal/adapter/kafka"
	"github.com/couchcryptid/zipcode-etl/internal/cli"
	"github.com/couchcryptid/zipcode-etl/internal/config"
	"github.com/couchcryptid/zipcode-etl/internal/observability"
	"github.com/couchcryptid/zipcode-etl/internal/pipeline"
	"github.com/couchcryptid/zipcode-etl/internal/store"
)

const prog = "zipexport"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, observability.NewMetrics())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, metrics *observability.Metrics) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dialect := fs.String("dialect", "", "input dialect, federal or simplified (default $ZIPCODE_DIALECT, else federal)")
	skipErrors := fs.Bool("skip-errors", false, "skip lines that fail to parse instead of aborting")
	states := fs.String("states", "", "comma-separated states to export (default $ZIPCODE_STATE_FILTER); an explicit empty value exports all")
	sortCity := fs.Bool("sort-city", false, "export sorted by city instead of input order")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] input_file [output_file]\n", prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cli.ExitUsage
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return cli.ExitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Fail(stderr, prog, &cli.UsageError{Msg: err.Error()})
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	opts, err := cli.ResolveOptions(cfg, *dialect, "federal", *skipErrors)
	if err != nil {
		return cli.Fail(stderr, prog, err)
	}
	filter := cfg.StateFilter
	if flagSet(fs, "states") {
		filter = nil
		for _, st := range strings.Split(*states, ",") {
			if st = strings.ToUpper(strings.TrimSpace(st)); st != "" {
				filter = append(filter, st)
			}
		}
	}

	in, err := cli.OpenInput(fs.Arg(0))
	if err != nil {
		return cli.Fail(stderr, prog, err)
	}
	defer in.Close()

	out := stdout
	var outFile *os.File
	if fs.NArg() == 2 {
		outFile, err = cli.CreateOutput(fs.Arg(1))
		if err != nil {
			return cli.Fail(stderr, prog, err)
		}
		defer outFile.Close()
		out = outFile
	}

	p := pipeline.New(opts.Dialect, opts.Policy, logger, metrics)
	s, _, err := p.Load(ctx, in)
	if err != nil {
		return cli.Fail(stderr, prog, err)
	}

	var sink pipeline.BatchLoader
	if cfg.KafkaEnabled() {
		w := kafka.NewWriter(cfg, logger)
		defer func() {
			if err := w.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		sink = w
		logger.Info("kafka export enabled", "topic", cfg.KafkaExportTopic, "batch_size", cfg.BatchSize)
	}

	if *sortCity {
		s.SortBy(store.City)
	}

	exporter := pipeline.NewExporter(out, sink, cfg.BatchSize, logger, metrics)
	if _, err := exporter.Export(ctx, s.Filter(pipeline.StatePredicate(filter...))); err != nil {
		return cli.Fail(stderr, prog, &cli.IoError{Err: err})
	}

	if outFile != nil {
		if err := outFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			return cli.Fail(stderr, prog, &cli.IoError{Err: fmt.Errorf("close %s: %w", fs.Arg(1), err)})
		}
	}
	return cli.ExitOK
}

// flagSet reports whether name was given on the command line, even if empty.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
