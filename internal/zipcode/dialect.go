package zipcode

import "fmt"

// Dialect describes the column layout of one CSV variant of the dataset.
// Both variants share the column order zip, type, city, state, [location
// type], lat, lon; they differ in quoting and in the columns around it.
type Dialect struct {
	Name string

	// Quoted strips double quotes from every token before use.
	Quoted bool

	// Leading is the number of columns before the zip column.
	Leading int

	// LocationType is true when a location-type column sits between state and lat.
	LocationType bool

	// Trailing is the number of columns after lon that must be present but are ignored.
	Trailing int

	// HeaderSentinel, when set, marks the header row by its raw first token.
	HeaderSentinel string

	// Lenient turns malformed coordinates into zero instead of ErrInvalidNumeric.
	Lenient bool
}

var (
	// Federal is the quoted layout published by the federal government.
	Federal = Dialect{
		Name:           "federal",
		Quoted:         true,
		Leading:        1,
		LocationType:   true,
		Trailing:       3,
		HeaderSentinel: `"RecordNumber"`,
	}

	// Simplified is the unquoted six-column layout also produced by Format.
	Simplified = Dialect{
		Name: "simplified",
	}
)

// DialectByName returns the named dialect.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case Federal.Name:
		return Federal, nil
	case Simplified.Name:
		return Simplified, nil
	default:
		return Dialect{}, fmt.Errorf("unknown dialect %q", name)
	}
}

// WithLenient returns a copy of d with lenient coordinate parsing toggled.
func (d Dialect) WithLenient(lenient bool) Dialect {
	d.Lenient = lenient
	return d
}

// columns is the minimum number of tokens a line needs in this dialect.
func (d Dialect) columns() int {
	n := d.Leading + 4 + 2 + d.Trailing
	if d.LocationType {
		n++
	}
	return n
}
