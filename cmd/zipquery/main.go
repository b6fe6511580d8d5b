// Command zipquery loads a ZIP code CSV file, sorts it by city, and answers
// city-name lookups read from stdin, one per line, until end of input.
//
// Usage:
//
//	zipquery [flags] input_file
//
// The input is read as the simplified layout unless -dialect or
// ZIPCODE_DIALECT says otherwise. City names match exactly, case included;
// the federal dataset is upper case.
// With -http (or HTTP_ADDR) the same lookups are served at GET /zipcodes?city=.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/zipcode-etl/internal/adapter/http"
	"github.com/couchcryptid/zipcode-etl/internal/cli"
	"github.com/couchcryptid/zipcode-etl/internal/config"
	"github.com/couchcryptid/zipcode-etl/internal/observability"
	"github.com/couchcryptid/zipcode-etl/internal/pipeline"
	"github.com/couchcryptid/zipcode-etl/internal/query"
	"github.com/couchcryptid/zipcode-etl/internal/store"
)

const (
	prog   = "zipquery"
	banner = "Enter city names (exact, case-sensitive), one per line; end input to quit."
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, observability.NewMetrics())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, metrics *observability.Metrics) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dialect := fs.String("dialect", "", "input dialect, federal or simplified (default $ZIPCODE_DIALECT, else simplified)")
	skipErrors := fs.Bool("skip-errors", false, "skip lines that fail to parse instead of aborting")
	httpAddr := fs.String("http", "", "also serve lookups over HTTP on this address (default $HTTP_ADDR)")
	quiet := fs.Bool("quiet", false, "do not print the instruction banner")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] input_file\n", prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cli.ExitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cli.ExitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Fail(stderr, prog, &cli.UsageError{Msg: err.Error()})
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	opts, err := cli.ResolveOptions(cfg, *dialect, "simplified", *skipErrors)
	if err != nil {
		return cli.Fail(stderr, prog, err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	in, err := cli.OpenInput(fs.Arg(0))
	if err != nil {
		return cli.Fail(stderr, prog, err)
	}
	defer in.Close()

	p := pipeline.New(opts.Dialect, opts.Policy, logger, metrics)
	s, _, err := p.Load(ctx, in)
	if err != nil {
		return cli.Fail(stderr, prog, err)
	}
	in.Close()

	s.SortBy(store.City)
	engine := query.New(s, logger, metrics)

	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, p, engine, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	if !*quiet {
		fmt.Fprintln(stderr, banner)
	}

	// The query loop blocks on stdin, so a signal is observed here rather than
	// between lines.
	errCh := make(chan error, 1)
	go func() { errCh <- engine.Run(ctx, stdin, stdout) }()

	select {
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return cli.Fail(stderr, prog, &cli.IoError{Err: err})
		}
	case <-ctx.Done():
		logger.Info("interrupted, shutting down")
	}
	return cli.ExitOK
}
