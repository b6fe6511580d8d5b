package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/zipcode-etl/internal/config"
	"github.com/couchcryptid/zipcode-etl/internal/pipeline"
	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	_, parseErr := zipcode.Parse(zipcode.Simplified, "601,STANDARD")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"usage", &UsageError{Msg: "usage: zipquery input_file"}, ExitUsage},
		{"open input", &OpenError{Path: "in.csv", Role: RoleInput, Err: os.ErrNotExist}, ExitOpenInput},
		{"open output", &OpenError{Path: "out.csv", Role: RoleOutput, Err: os.ErrPermission}, ExitOpenOutput},
		{"parse", parseErr, ExitParse},
		{"wrapped parse", fmt.Errorf("line 7: %w", parseErr), ExitParse},
		{"io", &IoError{Err: errors.New("disk full")}, ExitIO},
		{"unknown", errors.New("boom"), ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFail(t *testing.T) {
	var buf bytes.Buffer
	code := Fail(&buf, "zipexport", &OpenError{Path: "missing.csv", Role: RoleInput, Err: os.ErrNotExist})

	assert.Equal(t, ExitOpenInput, code)
	assert.Equal(t, "zipexport: cannot open missing.csv for input: file does not exist\n", buf.String())
}

func TestOpenInput(t *testing.T) {
	_, err := OpenInput(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, ExitOpenInput, ExitCode(err))

	path := filepath.Join(t.TempDir(), "zips.csv")
	require.NoError(t, os.WriteFile(path, []byte("header\n"), 0o600))
	f, err := OpenInput(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestCreateOutput(t *testing.T) {
	_, err := CreateOutput(filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv"))
	require.Error(t, err)
	assert.Equal(t, ExitOpenOutput, ExitCode(err))

	f, err := CreateOutput(filepath.Join(t.TempDir(), "out.csv"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestResolveOptions(t *testing.T) {
	cfg := &config.Config{Dialect: "federal", Numeric: config.NumericStrict, OnParseError: config.OnParseErrorAbort}

	opts, err := ResolveOptions(cfg, "", "simplified", false)
	require.NoError(t, err)
	assert.Equal(t, zipcode.Federal, opts.Dialect)
	assert.Equal(t, pipeline.AbortOnError, opts.Policy)

	opts, err = ResolveOptions(cfg, "simplified", "federal", true)
	require.NoError(t, err)
	assert.Equal(t, zipcode.Simplified, opts.Dialect)
	assert.Equal(t, pipeline.SkipOnError, opts.Policy)

	lenient := &config.Config{Dialect: "simplified", Numeric: config.NumericLenient, OnParseError: config.OnParseErrorSkip}
	opts, err = ResolveOptions(lenient, "", "federal", false)
	require.NoError(t, err)
	assert.True(t, opts.Dialect.Lenient)
	assert.Equal(t, pipeline.SkipOnError, opts.Policy)

	_, err = ResolveOptions(cfg, "excel", "federal", false)
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestResolveOptions_Fallback(t *testing.T) {
	unset := &config.Config{Numeric: config.NumericStrict, OnParseError: config.OnParseErrorAbort}

	opts, err := ResolveOptions(unset, "", "simplified", false)
	require.NoError(t, err)
	assert.Equal(t, zipcode.Simplified, opts.Dialect)

	opts, err = ResolveOptions(unset, "", "federal", false)
	require.NoError(t, err)
	assert.Equal(t, zipcode.Federal, opts.Dialect)

	opts, err = ResolveOptions(unset, "federal", "simplified", false)
	require.NoError(t, err)
	assert.Equal(t, zipcode.Federal, opts.Dialect)
}
