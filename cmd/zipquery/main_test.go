package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/zipcode-etl/internal/cli"
	"github.com/couchcryptid/zipcode-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const federalInput = `"RecordNumber","Zipcode","ZipCodeType","City","State","LocationType","Lat","Long","Xaxis","Yaxis","Zaxis"
"1","00601","STANDARD","ADJUNTAS","PR","PRIMARY",18.18,-66.75,0.38,-0.87,0.3
"2","02108","STANDARD","BOSTON","MA","PRIMARY",42.35,-71.06,0.22,-0.6,0.7
"3","01001","STANDARD","AGAWAM","MA","PRIMARY",42.06,-72.61,0.21,-0.66,0.71
"4","02112","PO_BOX","BOSTON","MA","PRIMARY",42.33,-71.05,0.22,-0.6,0.7
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zips.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runQuery(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, observability.NewMetricsForTesting())
	return code, stdout.String(), stderr.String()
}

func TestRun_Queries(t *testing.T) {
	code, stdout, stderr := runQuery(t, "ADJUNTAS\nAdjuntas\nBOSTON\n\nSPRINGFIELD\n", "-dialect", "federal", writeInput(t, federalInput))

	require.Equal(t, cli.ExitOK, code)
	assert.Contains(t, stderr, banner)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "00601", lines[0])
	assert.ElementsMatch(t, []string{"02108", "02112"}, lines[1:])
}

func TestRun_Quiet(t *testing.T) {
	code, stdout, stderr := runQuery(t, "", "-quiet", "-dialect", "federal", writeInput(t, federalInput))

	assert.Equal(t, cli.ExitOK, code)
	assert.Empty(t, stdout)
	assert.NotContains(t, stderr, banner)
}

func TestRun_Simplified(t *testing.T) {
	input := "Zipcode,ZipCodeType,City,State,Lat,Long\n601,STANDARD,ADJUNTAS,PR,18.18,-66.75\r\n"
	code, stdout, _ := runQuery(t, "ADJUNTAS\r\n", "-dialect", "simplified", writeInput(t, input))

	assert.Equal(t, cli.ExitOK, code)
	assert.Equal(t, "00601\n", stdout)
}

func TestRun_DefaultsToSimplified(t *testing.T) {
	input := "Zipcode,ZipCodeType,City,State,Lat,Long\n2134,STANDARD,ALLSTON,MA,42.35,-71.13\n"
	code, stdout, _ := runQuery(t, "ALLSTON\n", "-quiet", writeInput(t, input))

	assert.Equal(t, cli.ExitOK, code)
	assert.Equal(t, "02134\n", stdout)

	// Quoted federal rows do not parse as simplified ones.
	code, _, stderr := runQuery(t, "ALLSTON\n", "-quiet", writeInput(t, federalInput))
	assert.Equal(t, cli.ExitParse, code)
	assert.Contains(t, stderr, "line 2")
}

func TestRun_DialectFromEnv(t *testing.T) {
	t.Setenv("ZIPCODE_DIALECT", "federal")
	code, stdout, _ := runQuery(t, "AGAWAM\n", "-quiet", writeInput(t, federalInput))

	assert.Equal(t, cli.ExitOK, code)
	assert.Equal(t, "01001\n", stdout)
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runQuery(t, "")
	assert.Equal(t, cli.ExitUsage, code)
	assert.Contains(t, stderr, "usage: zipquery")

	code, _, _ = runQuery(t, "", "a.csv", "b.csv")
	assert.Equal(t, cli.ExitUsage, code)
}

func TestRun_MissingInput(t *testing.T) {
	code, _, _ := runQuery(t, "", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, cli.ExitOpenInput, code)
}

func TestRun_ParseError(t *testing.T) {
	input := federalInput + `"5","02113","STANDARD","BOSTON","MA","PRIMARY",north,-71.05,0.22,-0.6,0.7` + "\n"

	code, stdout, stderr := runQuery(t, "BOSTON\n", "-dialect", "federal", writeInput(t, input))
	assert.Equal(t, cli.ExitParse, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid numeric field")
}
