package profiler

import (
	"sort"
	"strings"

	"github.com/chop-dbhi/typeprofiler/datetime"
)

// windowSample is one entry of the Sample Window (§3, §4.4): a
// trimmed real sample plus its shape triple and the possibility
// flags determineType's special overrides test.
type windowSample struct {
	raw     string
	trimmed string
	shape   Shape

	possibleDateTime bool
	possibleEmail    bool
	possibleZip      bool
	possibleURL      bool
	possibleAddress  bool
}

// freqEntry is one bucket of a frequencyTable: a distinct shape
// string, its count, and the order it was first seen in — the tie
// break spec §9's open question fixes ("sorting stably by (count
// desc, insertion order asc)").
type freqEntry struct {
	key   string
	count int64
	order int
}

type frequencyTable struct {
	entries map[string]*freqEntry
	next    int
}

func newFrequencyTable() *frequencyTable {
	return &frequencyTable{entries: make(map[string]*freqEntry)}
}

func (f *frequencyTable) add(key string) {
	e, ok := f.entries[key]
	if !ok {
		e = &freqEntry{key: key, order: f.next}
		f.next++
		f.entries[key] = e
	}
	e.count++
}

// ranked returns every bucket sorted by (count desc, order asc).
func (f *frequencyTable) ranked() []*freqEntry {
	list := make([]*freqEntry, 0, len(f.entries))
	for _, e := range f.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].order < list[j].order
	})
	return list
}

func (f *frequencyTable) best() (*freqEntry, bool) {
	ranked := f.ranked()
	if len(ranked) == 0 {
		return nil, false
	}
	return ranked[0], true
}

// fusedBest is determineType step 2 (§4.4): when the top two (or
// three) entries of a level are both/all numeric, their join in the
// numeric lattice replaces the plain top entry.
func (f *frequencyTable) fusedBest() (*freqEntry, bool) {
	ranked := f.ranked()
	if len(ranked) == 0 {
		return nil, false
	}
	top := ranked[0]
	kind, ok := patternNumericKind(top.key)
	if !ok {
		return top, true
	}

	fused := kind
	count := top.count
	end := len(ranked)
	if end > 3 {
		end = 3
	}
	for _, next := range ranked[1:end] {
		if next == nil {
			break
		}
		nk, ok := patternNumericKind(next.key)
		if !ok {
			break
		}
		fused = promote(fused, nk)
		count += next.count
	}
	if fused == kind {
		return top, true
	}
	return &freqEntry{key: numericKindPattern(fused), count: count, order: top.order}, true
}

// classifyWindowSample folds raw/trimmed into the Sample Window entry
// §4.4 describes: shape triple plus possibility flags.
func (a *analyzer) classifyWindowSample(raw, trimmed string) windowSample {
	return windowSample{
		raw:              raw,
		trimmed:          trimmed,
		shape:            compress(trimmed, a.sym, a.registry),
		possibleDateTime: a.looksLikeDateTime(trimmed),
		possibleEmail:    looksLikeEmail(trimmed),
		possibleZip:      looksLikeZip(trimmed),
		possibleURL:      strings.Contains(trimmed, "://"),
		possibleAddress:  a.looksLikeAddress(trimmed),
	}
}

func (a *analyzer) looksLikeDateTime(s string) bool {
	_, ok := datetime.Detect(s, a.datetimeOptions())
	return ok
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && !strings.ContainsAny(s, ",;")
}

func looksLikeZip(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a *analyzer) looksLikeAddress(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	return a.refs.AddressMarkers.Contains(fields[len(fields)-1])
}

// determineType is §4.4: once the window fills, fuse the three
// shape levels' frequency evidence, apply the special overrides, then
// replay the window through the Streaming Tracker.
func (a *analyzer) determineType() {
	l0 := newFrequencyTable()
	l1 := newFrequencyTable()
	l2 := newFrequencyTable()
	for _, ws := range a.window {
		l0.add(ws.shape.L0)
		l1.add(ws.shape.L1)
		l2.add(ws.shape.L2)
	}

	bestL0, ok0 := l0.best()
	bestL1, ok1 := l1.fusedBest()
	bestL2, ok2 := l2.fusedBest()

	var best *freqEntry
	var recognized bool
	if ok0 {
		_, _, recognized0 := classifyGeneralPattern(bestL0.key)
		if recognized0 && (!ok1 || bestL0.count >= bestL1.count) {
			best, recognized = bestL0, true
		}
	}
	if best == nil && ok1 {
		_, _, recognized1 := classifyGeneralPattern(bestL1.key)
		best, recognized = bestL1, recognized1
	}
	if best == nil && ok0 {
		best, recognized = bestL0, false
	}
	if best == nil {
		return
	}

	// §4.4 step 3's L2 switch: (a) nothing else recognized, or
	// (b) L2 matches more frequently than the current choice — the
	// literal text of (b) alone already implies (c)/(d) whenever it
	// holds, since both are "L2 more frequent" sub-cases.
	if ok2 {
		if !recognized || bestL2.count > best.count {
			best = bestL2
		}
	}

	a.applyStructuralType(best)
	a.applySpecialOverrides()

	a.determined = true
	a.lockReflectionSchedule()
	a.replayWindow()
}

func (a *analyzer) applyStructuralType(best *freqEntry) {
	semType, qual, ok := classifyGeneralPattern(best.key)
	if !ok {
		semType, qual = String, NoQualifier
	}
	a.semanticType = semType
	a.qualifier = qual
	a.patternRegExp = best.key
}

func (a *analyzer) applySpecialOverrides() {
	n := len(a.window)
	if n == 0 {
		return
	}

	if allTrue(a.window, func(w windowSample) bool { return w.possibleDateTime }) {
		if a.applyDateTimeOverride() {
			return
		}
	}
	if allTrue(a.window, func(w windowSample) bool { return w.possibleEmail }) {
		if ratioTrue(a.window, func(w windowSample) bool { return isValidEmailSyntax(w.trimmed) }) >= 0.9 {
			a.semanticType, a.qualifier = String, Email
			return
		}
	}
	if allTrue(a.window, func(w windowSample) bool { return w.possibleURL }) {
		if ratioTrue(a.window, func(w windowSample) bool { return isValidURLSyntax(w.trimmed) }) >= 0.9 {
			a.semanticType, a.qualifier = String, URL
			return
		}
	}
	if allTrue(a.window, func(w windowSample) bool { return w.possibleZip }) {
		if a.refs.ZIP.MatchRate(trimmedValues(a.window)) >= 0.9 {
			a.semanticType, a.qualifier = Long, ZIP
			return
		}
	}
	if allTrue(a.window, func(w windowSample) bool { return w.possibleAddress }) {
		if a.refs.AddressMarkers.MatchRate(lastTokens(a.window)) >= 0.9 {
			a.semanticType, a.qualifier = String, Address
			return
		}
	}
}

func (a *analyzer) applyDateTimeOverride() bool {
	opts := a.datetimeOptions()
	table := newFrequencyTable()
	formats := make(map[string]*datetime.Format, len(a.window))
	for _, ws := range a.window {
		f, ok := datetime.Detect(ws.trimmed, opts)
		if !ok {
			return false
		}
		table.add(f.Pattern)
		formats[f.Pattern] = f
	}
	best, ok := table.best()
	if !ok {
		return false
	}
	f := formats[best.key]
	if f.HasPlaceholder() && a.cfg.ResolutionMode != None {
		datetime.ForceResolve(f, a.dayFirst())
	}

	pr, err := datetime.AsResult(f, opts)
	if err != nil {
		return false
	}
	pr = datetime.CacheResult(pr)

	a.semanticType = dateTimeSemanticType(f.Type)
	a.qualifier = NoQualifier
	a.formatString = f.Pattern
	a.dateResult = pr
	a.patternRegExp = pr.GetRegExp()
	return true
}

func dateTimeSemanticType(t datetime.Type) SemanticType {
	switch t {
	case datetime.Date:
		return LocalDate
	case datetime.Time:
		return LocalTime
	case datetime.DateTime:
		return LocalDateTime
	case datetime.ZonedDateTime:
		return ZonedDateTime
	case datetime.OffsetDateTime:
		return OffsetDateTime
	}
	return Unknown
}

func (a *analyzer) replayWindow() {
	for _, ws := range a.window {
		a.trackSample(ws.trimmed)
	}
}

func allTrue(window []windowSample, pred func(windowSample) bool) bool {
	if len(window) == 0 {
		return false
	}
	for _, w := range window {
		if !pred(w) {
			return false
		}
	}
	return true
}

func ratioTrue(window []windowSample, pred func(windowSample) bool) float64 {
	if len(window) == 0 {
		return 0
	}
	hits := 0
	for _, w := range window {
		if pred(w) {
			hits++
		}
	}
	return float64(hits) / float64(len(window))
}

func trimmedValues(window []windowSample) []string {
	out := make([]string, len(window))
	for i, w := range window {
		out[i] = w.trimmed
	}
	return out
}

func lastTokens(window []windowSample) []string {
	out := make([]string, 0, len(window))
	for _, w := range window {
		fields := strings.Fields(w.trimmed)
		if len(fields) > 0 {
			out = append(out, fields[len(fields)-1])
		}
	}
	return out
}
