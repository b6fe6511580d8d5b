package zipcode

import (
	"io"
	"strconv"
	"strings"
)

// Format renders a record as one export line without a terminator:
// zip,KIND,city,state,lat,lon with six fractional digits on coordinates.
func Format(r Record) string {
	var b strings.Builder
	b.Grow(len(r.Zip) + len(r.City) + 40)
	b.WriteString(r.Zip)
	b.WriteByte(',')
	b.WriteString(r.Kind.String())
	b.WriteByte(',')
	b.WriteString(r.City)
	b.WriteByte(',')
	b.WriteString(r.State)
	b.WriteByte(',')
	b.WriteString(formatCoordinate(r.Lat))
	b.WriteByte(',')
	b.WriteString(formatCoordinate(r.Lon))
	return b.String()
}

// Write writes r to w as one newline-terminated export line.
func Write(w io.Writer, r Record) error {
	_, err := io.WriteString(w, Format(r)+"\n")
	return err
}

func formatCoordinate(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 64)
}
