package profile

// Field stores the inferred type and statistics for one field, backed
// by a profiler.Analyzer's Result.
type Field struct {
	// Name of this field.
	Name string `json:"name"`

	// Index of the field in tabular sources.
	Index int `json:"index"`

	// SemanticType is the inferred base type (Long, Double, String,
	// LocalDate, ...).
	SemanticType string `json:"semantic_type"`

	// Qualifier refines SemanticType with a logical type or null/blank
	// marker, empty when none applies.
	Qualifier string `json:"qualifier,omitempty"`

	// True if the field contains null values.
	Nullable bool `json:"nullable"`

	// True if the field contains empty strings.
	Missing bool `json:"missing"`

	// True if all values are unique.
	Unique bool `json:"unique"`

	// True if the field behaves as a record key (§4.7).
	IsKey bool `json:"is_key"`

	// If true, at least one value has been detected to have a leading zero.
	LeadingZeros bool `json:"leading_zeros"`

	// Confidence is the fraction of real samples matching SemanticType.
	Confidence float64 `json:"confidence"`

	// PatternRegExp is the shape regexp backing SemanticType.
	PatternRegExp string `json:"pattern,omitempty"`

	// FormatString is the date/time format, set only for date/time fields.
	FormatString string `json:"format,omitempty"`

	MinValue string `json:"min_value,omitempty"`
	MaxValue string `json:"max_value,omitempty"`
	Sum      string `json:"sum,omitempty"`

	SampleCount int64  `json:"sample_count"`
	AnalyzerID  string `json:"analyzer_id"`
}

type Profile struct {
	// Total number of records processed.
	RecordCount int64 `json:"record_count"`

	// Flat set of fields that were profiled.
	Fields map[string]*Field `json:"fields"`
}

func NewProfile() *Profile {
	return &Profile{
		Fields: make(map[string]*Field),
	}
}
