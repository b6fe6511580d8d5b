package zipcode

import (
	"strconv"
	"strings"
)

const zipLen = 5

// Parse decodes one line of the dataset into a Record. The line must already
// have its terminator removed. A line holding only whitespace is reported as
// ErrEmptyLine.
//
// Tokens are split on every comma; quoted commas are not supported because
// the dataset never contains them. Columns beyond those the dialect names
// are ignored.
func Parse(d Dialect, line string) (Record, error) {
	if strings.TrimSpace(line) == "" {
		return Record{}, &ParseError{Err: ErrEmptyLine}
	}

	tokens := strings.Split(line, ",")
	if d.HeaderSentinel != "" && tokens[0] == d.HeaderSentinel {
		return Record{}, &ParseError{Err: ErrHeaderRow}
	}
	if len(tokens) < d.columns() {
		return Record{}, &ParseError{Token: line, Err: ErrTruncatedRecord}
	}

	col := d.Leading
	next := func() string {
		tok := tokens[col]
		col++
		if d.Quoted {
			tok = stripQuotes(tok)
		}
		return tok
	}

	rec := Record{
		Zip:   padZip(next()),
		Kind:  ParseKind(next()),
		City:  next(),
		State: next(),
	}
	if d.LocationType {
		col++
	}

	var err error
	if rec.Lat, err = parseCoordinate(d, "lat", next()); err != nil {
		return Record{}, err
	}
	if rec.Lon, err = parseCoordinate(d, "lon", next()); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// stripQuotes removes every double quote, wherever it appears in the token.
func stripQuotes(tok string) string {
	return strings.ReplaceAll(tok, `"`, "")
}

// padZip restores leading zeros lost by spreadsheet tools: "601" -> "00601".
func padZip(zip string) string {
	if len(zip) >= zipLen {
		return zip
	}
	return strings.Repeat("0", zipLen-len(zip)) + zip
}

func parseCoordinate(d Dialect, field, tok string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 32)
	if err != nil {
		if d.Lenient {
			return 0, nil
		}
		return 0, &ParseError{Field: field, Token: tok, Err: ErrInvalidNumeric}
	}
	return float32(v), nil
}
