// Package cli holds what the zipexport and zipquery commands share: the
// error taxonomy, exit codes, file opening, and option resolution.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/zipcode-etl/internal/config"
	"github.com/couchcryptid/zipcode-etl/internal/pipeline"
	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitUsage      = -1
	ExitOpenInput  = -2
	ExitOpenOutput = -3
	ExitParse      = -4
	ExitIO         = -5
)

// Roles of files a command opens.
const (
	RoleInput  = "input"
	RoleOutput = "output"
)

// UsageError reports bad arguments or configuration.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// OpenError reports a file that could not be opened.
type OpenError struct {
	Path string
	Role string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open %s for %s: %v", e.Path, e.Role, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// IoError reports a read or write failure on an open stream.
type IoError struct {
	Err error
}

func (e *IoError) Error() string { return e.Err.Error() }

func (e *IoError) Unwrap() error { return e.Err }

// ExitCode maps an error to the process exit status. Errors outside the
// taxonomy are treated as I/O failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usage *UsageError
	var open *OpenError
	var parse *zipcode.ParseError
	switch {
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &open):
		if open.Role == RoleOutput {
			return ExitOpenOutput
		}
		return ExitOpenInput
	case errors.As(err, &parse):
		return ExitParse
	default:
		return ExitIO
	}
}

// Fail prints a one-line diagnostic for err and returns its exit code.
func Fail(w io.Writer, prog string, err error) int {
	fmt.Fprintf(w, "%s: %v\n", prog, err)
	return ExitCode(err)
}

// OpenInput opens path for reading.
func OpenInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Role: RoleInput, Err: err}
	}
	return f, nil
}

// CreateOutput creates or truncates path for writing.
func CreateOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &OpenError{Path: path, Role: RoleOutput, Err: err}
	}
	return f, nil
}

// Options are the load settings resolved from configuration and flags.
type Options struct {
	Dialect zipcode.Dialect
	Policy  pipeline.ErrorPolicy
}

// ResolveOptions combines cfg with command-line overrides. The dialect is
// taken from the flag, then the configuration, then fallback. skipErrors
// forces SkipOnError.
func ResolveOptions(cfg *config.Config, dialect, fallback string, skipErrors bool) (Options, error) {
	if dialect == "" {
		dialect = cfg.Dialect
	}
	if dialect == "" {
		dialect = fallback
	}
	d, err := zipcode.DialectByName(dialect)
	if err != nil {
		return Options{}, &UsageError{Msg: err.Error()}
	}
	d = d.WithLenient(cfg.Numeric == config.NumericLenient)

	policy := pipeline.AbortOnError
	if skipErrors || cfg.OnParseError == config.OnParseErrorSkip {
		policy = pipeline.SkipOnError
	}
	return Options{Dialect: d, Policy: policy}, nil
}
