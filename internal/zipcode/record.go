package zipcode

import "fmt"

// Kind is the ZIP code type published in the ZipCodeType column.
type Kind int

const (
	KindInvalid Kind = iota
	KindStandard
	KindPOBox
	KindUnique
	KindMilitary
)

var kindNames = map[Kind]string{
	KindInvalid:  "INVALID",
	KindStandard: "STANDARD",
	KindPOBox:    "PO_BOX",
	KindUnique:   "UNIQUE",
	KindMilitary: "MILITARY",
}

var kindsByName = map[string]Kind{
	"INVALID":  KindInvalid,
	"STANDARD": KindStandard,
	"PO_BOX":   KindPOBox,
	"UNIQUE":   KindUnique,
	"MILITARY": KindMilitary,
}

// ParseKind maps a ZipCodeType token to its Kind. Matching is exact and
// case-sensitive; unrecognized tokens map to KindInvalid.
func ParseKind(s string) Kind {
	if k, ok := kindsByName[s]; ok {
		return k
	}
	return KindInvalid
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name so JSON output matches the CSV form.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Record is one decoded row of the ZIP code dataset. Records are built by
// Parse and passed by value; nothing mutates them afterwards.
type Record struct {
	Zip   string  `json:"zip"`
	Kind  Kind    `json:"kind"`
	City  string  `json:"city"`
	State string  `json:"state"`
	Lat   float32 `json:"lat"`
	Lon   float32 `json:"lon"`
}
