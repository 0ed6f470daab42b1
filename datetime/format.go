package datetime

// Type is the kind of temporal value a detected/cached format
// describes (spec §3, §4.2 getType()).
type Type uint8

const (
	Date Type = iota
	Time
	DateTime
	ZonedDateTime
	OffsetDateTime
)

func (t Type) String() string {
	switch t {
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case ZonedDateTime:
		return "ZonedDateTime"
	case OffsetDateTime:
		return "OffsetDateTime"
	}
	return "Unknown"
}

// Format is the Date/Time Format Descriptor of spec §3: the detected
// format string plus the structural attributes a caller (or the
// Streaming Tracker's format-repair retry) needs without re-parsing
// the string.
type Format struct {
	Pattern string
	Type    Type

	DateFieldCount int
	TimeFieldCount int

	// Field positions, 0-based index into the three date fields as
	// they appear left-to-right in Pattern; -1 if that field is not
	// present (e.g. Time-only formats have no date fields).
	DayPos   int
	MonthPos int
	YearPos  int

	DayLen   int
	MonthLen int
	YearLen  int

	HourLen int // 1 ("H") or 2 ("HH"); 0 if no time portion

	TimeFirst bool

	DateSep     byte // '/', '-', ' ', or 0 if no date portion
	DateTimeSep byte // ' ', 'T', or 0 if single-component

	TimeZone string // "", " z", "x", "xx", "xxx", "xxxx", "xxxxx"
}

// HasPlaceholder reports whether Pattern still carries an unresolved
// '?' (day/month ambiguity spec §3/§4.1).
func (f *Format) HasPlaceholder() bool {
	for _, r := range f.Pattern {
		if r == '?' {
			return true
		}
	}
	return false
}
