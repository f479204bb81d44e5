package wormula

// kind tags the dynamic type occupying a slot in a State's value
// table. The zero value, kindUndefined, is what an unreferenced slot
// reads as.
type kind uint8

const (
	kindUndefined kind = iota
	kindI64
	kindF64
	kindString
	kindRegex
)

func (k kind) String() string {
	switch k {
	case kindUndefined:
		return "undefined"
	case kindI64:
		return "i64"
	case kindF64:
		return "f64"
	case kindString:
		return "string"
	case kindRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// value is the content of one State slot. str holds both kindString
// and kindRegex payloads; compiledRegex is populated lazily the first
// time a kindRegex value is matched against, so an invalid pattern
// only traps at first use, not at construction (construction happens
// during the load pass, matching happens during eval).
type value struct {
	kind          kind
	i64           int64
	f64           float64
	str           string
	compiledRegex *compiledPattern
}

func undefinedValue() value { return value{kind: kindUndefined} }

func i64Value(v int64) value { return value{kind: kindI64, i64: v} }

func f64Value(v float64) value { return value{kind: kindF64, f64: v} }

func stringValue(v string) value { return value{kind: kindString, str: v} }

func regexValue(pattern string) value { return value{kind: kindRegex, str: pattern} }
