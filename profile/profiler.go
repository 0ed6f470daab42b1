package profile

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chop-dbhi/typeprofiler/profiler"
	"github.com/chop-dbhi/typeprofiler/reference"
)

// Config drives one multi-field profiling run: which fields to
// consider plus the profiler.Analyzer options applied uniformly to
// every field's Analyzer.
type Config struct {
	// Include are the fields to explicitly include.
	Include []string

	// Exclude are the fields to explicitly exclude.
	Exclude []string

	SampleSize        int
	MaxCardinality    int
	MaxOutliers       int
	CollectStatistics bool
	ResolutionMode    profiler.ResolutionMode
	Locale            string

	// ReferenceSets overrides the embedded defaults for every field's
	// Analyzer; nil keeps reference.DefaultSets().
	ReferenceSets *reference.Sets
}

// Profiler drives a profiler.Analyzer per field across many records.
type Profiler interface {
	// Incr increments the record count.
	Incr()

	// Record trains a field's Analyzer with one non-null raw value.
	Record(field string, raw string)

	// RecordNull trains a field's Analyzer with a null value.
	RecordNull(field string)

	// Profile returns the accumulated profile.
	Profile() *Profile
}

type fieldState struct {
	analyzer profiler.Analyzer
	unique   bool
	seen     map[string]struct{}
	nullable bool
}

type multiProfiler struct {
	config  *Config
	count   int64
	include map[string]struct{}
	exclude map[string]struct{}
	fields  map[string]*fieldState
	order   []string
}

// NewProfiler validates c against the Analyzer's own configuration
// rules (profiler.Analyzer.SetSampleSize et al.) up front, so a bad
// SampleSize/MaxCardinality/MaxOutliers surfaces immediately rather
// than being silently ignored the first time a field is seen.
func NewProfiler(c *Config) (Profiler, error) {
	if c == nil {
		c = &Config{}
	}

	if err := validateConfig(c); err != nil {
		return nil, err
	}

	p := &multiProfiler{
		config: c,
		fields: make(map[string]*fieldState),
	}

	if len(c.Exclude) > 0 {
		p.exclude = toLowerSet(c.Exclude)
	}
	if len(c.Include) > 0 {
		p.include = toLowerSet(c.Include)
	}

	return p, nil
}

// validateConfig mirrors the range checks the Analyzer's own Set*
// methods enforce, so newFieldState's calls to them (below) can never
// fail on a Config that passed here.
func validateConfig(c *Config) error {
	if c.SampleSize != 0 && c.SampleSize < 20 {
		return &profiler.ConfigError{Option: "sampleSize", Reason: "must be >= 20"}
	}
	if c.MaxCardinality < 0 {
		return &profiler.ConfigError{Option: "maxCardinality", Reason: "must be >= 0"}
	}
	if c.MaxOutliers < 0 {
		return &profiler.ConfigError{Option: "maxOutliers", Reason: "must be >= 0"}
	}
	return nil
}

func toLowerSet(list []string) map[string]struct{} {
	s := make(map[string]struct{}, len(list))
	for _, v := range list {
		s[strings.ToLower(v)] = struct{}{}
	}
	return s
}

func (p *multiProfiler) Incr() {
	p.count++
}

// field returns the field's Analyzer state if it should be profiled,
// lazily creating one on first sight.
func (p *multiProfiler) field(n string) (*fieldState, bool) {
	n = strings.ToLower(n)

	if _, ok := p.exclude[n]; ok {
		return nil, false
	}
	if len(p.include) > 0 {
		if _, ok := p.include[n]; !ok {
			return nil, false
		}
	}

	f, ok := p.fields[n]
	if !ok {
		f = p.newFieldState(n)
		p.fields[n] = f
		p.order = append(p.order, n)
	}
	return f, true
}

// newFieldState's Set* calls apply a Config already checked by
// validateConfig against a fresh, never-trained Analyzer, so none of
// them can fail; a failure here means the two have drifted apart, and
// is logged rather than silently kept as a defaulted-value surprise.
func (p *multiProfiler) newFieldState(name string) *fieldState {
	a := profiler.NewAnalyzer(name, p.config.ResolutionMode)

	logField := func(option string, err error) {
		if err != nil {
			logrus.WithFields(logrus.Fields{"field": name, "option": option}).
				WithError(err).Error("field analyzer rejected a pre-validated config option")
		}
	}

	if p.config.SampleSize > 0 {
		logField("sampleSize", a.SetSampleSize(p.config.SampleSize))
	}
	if p.config.MaxCardinality > 0 {
		logField("maxCardinality", a.SetMaxCardinality(p.config.MaxCardinality))
	}
	if p.config.MaxOutliers > 0 {
		logField("maxOutliers", a.SetMaxOutliers(p.config.MaxOutliers))
	}
	if p.config.Locale != "" {
		logField("locale", a.SetLocale(p.config.Locale))
	}
	if p.config.ReferenceSets != nil {
		logField("referenceSets", a.SetReferenceSets(p.config.ReferenceSets))
	}

	return &fieldState{
		analyzer: a,
		unique:   true,
		seen:     make(map[string]struct{}),
	}
}

func (p *multiProfiler) Record(n, v string) {
	f, ok := p.field(n)
	if !ok {
		return
	}

	if f.unique {
		if _, dup := f.seen[v]; dup {
			f.unique = false
			f.seen = nil
		} else {
			f.seen[v] = struct{}{}
		}
	}

	f.analyzer.Train(v, false)
}

func (p *multiProfiler) RecordNull(n string) {
	f, ok := p.field(n)
	if !ok {
		return
	}

	f.nullable = true
	f.analyzer.Train("", true)
}

func (p *multiProfiler) Profile() *Profile {
	r := NewProfile()
	r.RecordCount = p.count

	for idx, name := range p.order {
		f := p.fields[name]
		res := f.analyzer.Result()

		r.Fields[name] = &Field{
			Name:          name,
			Index:         idx,
			SemanticType:  res.SemanticType.String(),
			Qualifier:     qualifierName(res.Qualifier),
			Nullable:      f.nullable,
			Missing:       res.BlankCount > 0,
			Unique:        f.unique,
			IsKey:         res.IsKey,
			LeadingZeros:  res.TotalLeadingZeros > 0,
			Confidence:    res.Confidence,
			PatternRegExp: res.PatternRegExp,
			FormatString:  res.FormatString,
			MinValue:      res.MinValue,
			MaxValue:      res.MaxValue,
			Sum:           res.Sum,
			SampleCount:   res.SampleCount,
			AnalyzerID:    res.ID,
		}
	}

	return r
}

func qualifierName(q profiler.Qualifier) string {
	if q == profiler.NoQualifier {
		return ""
	}
	return q.String()
}
