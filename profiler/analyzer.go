package profiler

import (
	uuid "github.com/satori/go.uuid"

	"github.com/chop-dbhi/typeprofiler/datetime"
	"github.com/chop-dbhi/typeprofiler/reference"
)

// Config holds the options §6 exposes through setSampleSize /
// setMaxCardinality / setMaxOutliers / setCollectStatistics /
// setLocale. It is a plain struct — the library boundary is the
// Analyzer's setter methods, not a config file; that wiring lives one
// layer up, in cmd/typeprofiler's viper binding.
type Config struct {
	SampleSize        int
	MaxCardinality    int
	MaxOutliers       int
	CollectStatistics bool
	ResolutionMode    ResolutionMode
	Locale            string
}

// DefaultConfig returns the §6 defaults: sample window 20, cardinality
// cap 500, outlier cap 50, statistics collection on, auto day/month
// resolution, English locale.
func DefaultConfig() Config {
	return Config{
		SampleSize:        20,
		MaxCardinality:    500,
		MaxOutliers:       50,
		CollectStatistics: true,
		ResolutionMode:    Auto,
		Locale:            "en-US",
	}
}

// Analyzer is the training API of §6: newAnalyzer / setters / train /
// getResult. A single instance is single-threaded (§5) — callers
// profiling many columns run one Analyzer per column.
type Analyzer interface {
	// ID identifies this analyzer instance, stamped into Result so a
	// caller correlating many concurrent analyzers can trace a result
	// back to its producer.
	ID() string

	SetSampleSize(n int) error
	SetMaxCardinality(n int) error
	SetMaxOutliers(n int) error
	SetCollectStatistics(collect bool) error
	SetLocale(locale string) error
	SetReferenceSets(sets *reference.Sets) error

	// Train feeds one sample (or a null, when isNull is true) and
	// reports whether a type has been locked in. It never returns an
	// error: sample-level failures become outliers, never panics or
	// propagate (§7 kind 1).
	Train(sample string, isNull bool) bool

	// Result returns a read-only snapshot. It may be called at any
	// point without disturbing further training (§6).
	Result() *Result
}

type analyzer struct {
	id   uuid.UUID
	name string

	cfg     Config
	started bool

	sym      localeSymbols
	months   *datetime.MonthAbbrSet
	zones    *datetime.ZoneSet
	refs     *reference.Sets
	registry *patternRegistry

	sampleCount int64
	nullCount   int64
	blankCount  int64
	matchCount  int64

	totalLeadingZeros int64
	negativeLongs     int64
	negativeDoubles   int64

	minRawLength, maxRawLength         int
	minTrimmedLength, maxTrimmedLength int
	haveLength                         bool

	haveLong         bool
	minLong, maxLong int64

	haveDouble           bool
	minDouble, maxDouble float64

	haveString           bool
	minString, maxString string
	stringMinLen         int
	stringMaxLen         int // -1 until finalized

	haveBoolean            bool
	minBoolean, maxBoolean bool

	haveDate               bool
	minDate, maxDate       string
	minDateKey, maxDateKey string

	sum *bigSum

	cardinality map[string]int64
	outliers    map[string]int64
	outlierOverflow int64

	window []windowSample

	determined    bool
	semanticType  SemanticType
	qualifier     Qualifier
	patternRegExp string
	formatString  string
	dateResult    *datetime.ParseResult

	reflectionSamples  int64
	reflected          bool
	confidenceOverride *float64
}

// NewAnalyzer constructs a profiler for one column (§6 newAnalyzer).
// Reference data defaults to the module's embedded sets; a caller with
// host-provided CSVs should call SetReferenceSets before the first
// Train.
func NewAnalyzer(name string, mode ResolutionMode) Analyzer {
	cfg := DefaultConfig()
	cfg.ResolutionMode = mode

	a := &analyzer{
		id:            uuid.NewV4(),
		name:          name,
		cfg:           cfg,
		sym:           defaultLocaleSymbols,
		months:        reference.MonthAbbrSetForLocale(cfg.Locale),
		zones:         datetime.NewZoneSet(datetime.DefaultZoneNames),
		refs:          reference.DefaultSets(),
		registry:      newPatternRegistry(),
		cardinality:   make(map[string]int64),
		outliers:      make(map[string]int64),
		sum:           newBigSum(),
		stringMaxLen:  -1,
		minRawLength:  -1,
		maxRawLength:  -1,
	}
	return a
}

func (a *analyzer) ID() string { return a.id.String() }

func (a *analyzer) checkNotStarted(option string) error {
	if a.started {
		return &ConfigError{Option: option, Reason: "cannot be changed after training has started"}
	}
	return nil
}

func (a *analyzer) SetSampleSize(n int) error {
	if err := a.checkNotStarted("sampleSize"); err != nil {
		return err
	}
	if n < 20 {
		return &ConfigError{Option: "sampleSize", Reason: "must be >= 20"}
	}
	a.cfg.SampleSize = n
	return nil
}

func (a *analyzer) SetMaxCardinality(n int) error {
	if err := a.checkNotStarted("maxCardinality"); err != nil {
		return err
	}
	if n < 0 {
		return &ConfigError{Option: "maxCardinality", Reason: "must be >= 0"}
	}
	a.cfg.MaxCardinality = n
	return nil
}

func (a *analyzer) SetMaxOutliers(n int) error {
	if err := a.checkNotStarted("maxOutliers"); err != nil {
		return err
	}
	if n < 0 {
		return &ConfigError{Option: "maxOutliers", Reason: "must be >= 0"}
	}
	a.cfg.MaxOutliers = n
	return nil
}

func (a *analyzer) SetCollectStatistics(collect bool) error {
	if err := a.checkNotStarted("collectStatistics"); err != nil {
		return err
	}
	a.cfg.CollectStatistics = collect
	return nil
}

func (a *analyzer) SetLocale(locale string) error {
	if err := a.checkNotStarted("locale"); err != nil {
		return err
	}
	a.cfg.Locale = locale
	a.sym = localeSymbolsFor(locale)
	a.months = reference.MonthAbbrSetForLocale(locale)
	return nil
}

func (a *analyzer) SetReferenceSets(sets *reference.Sets) error {
	if err := a.checkNotStarted("referenceSets"); err != nil {
		return err
	}
	if sets != nil {
		a.refs = sets
	}
	return nil
}

// datetimeOptions builds the datetime.Options this analyzer's
// configuration implies, for every Detect/CachedResult/AsResult call.
func (a *analyzer) datetimeOptions() datetime.Options {
	return datetime.Options{
		Resolution: toDatetimeMode(a.cfg.ResolutionMode),
		Months:     a.months,
		Zones:      a.zones,
	}
}

func toDatetimeMode(m ResolutionMode) datetime.ResolutionMode {
	switch m {
	case DayFirst:
		return datetime.DayFirst
	case MonthFirst:
		return datetime.MonthFirst
	case None:
		return datetime.None
	default:
		return datetime.Auto
	}
}

func (a *analyzer) dayFirst() bool {
	switch a.cfg.ResolutionMode {
	case DayFirst:
		return true
	case MonthFirst:
		return false
	default:
		return localeIsDayFirst(a.cfg.Locale)
	}
}

func (a *analyzer) lockReflectionSchedule() {
	a.reflectionSamples = 30
	if a.cfg.SampleSize > 30 {
		a.reflectionSamples = int64(a.cfg.SampleSize) + 1
	}
}
