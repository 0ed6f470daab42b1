package profiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chop-dbhi/typeprofiler/datetime"
)

// maybeReflect fires the scheduled reflection pass (§4.6) once real
// samples reach reflectionSamples, then leaves it alone — getResult
// always runs one more pass regardless (a.reflect is idempotent: each
// rule below re-checks the state it cares about).
func (a *analyzer) maybeReflect() {
	if a.reflected || !a.determined {
		return
	}
	real := a.sampleCount - (a.nullCount + a.blankCount)
	if real >= a.reflectionSamples {
		a.reflect()
		a.reflected = true
	}
}

func (a *analyzer) reflect() {
	if a.reflectAllBlankOrNull() {
		return
	}
	if !a.determined {
		return
	}

	a.reflectZip()
	a.reflectSignedLong()
	a.reflectLongDate()
	a.reflectBooleanBits()
	a.reflectUniformLengthString()
	a.reflectBackout()

	if a.semanticType == String {
		a.finalizeStringBounds()
	}
}

// reflectAllBlankOrNull is §4.6's first rule.
func (a *analyzer) reflectAllBlankOrNull() bool {
	real := a.sampleCount - (a.nullCount + a.blankCount)
	if a.sampleCount == 0 || real > 0 {
		return false
	}

	switch {
	case a.nullCount > 0 && a.blankCount > 0:
		a.qualifier = BlankOrNull
	case a.blankCount > 0:
		a.qualifier = Blank
	default:
		a.qualifier = NullQualifier
	}
	a.semanticType = String

	conf := 0.0
	if a.sampleCount >= 10 {
		conf = 1.0
	}
	a.confidenceOverride = &conf
	return true
}

func (a *analyzer) confidence() float64 {
	if a.confidenceOverride != nil {
		return *a.confidenceOverride
	}
	real := a.sampleCount - (a.nullCount + a.blankCount)
	if real <= 0 {
		return 0
	}
	return float64(a.matchCount) / float64(real)
}

// reflectZip is §4.6's ZIP retraction rule.
func (a *analyzer) reflectZip() {
	if a.qualifier != ZIP {
		return
	}
	longRatio := a.longParsableRatio()
	if (a.confidence() < 0.9 || int64(len(a.cardinality)) < 5) && longRatio > 0.95 {
		a.qualifier = NoQualifier
		a.semanticType = Long
		a.migrateLongOutliersToCardinality()
		return
	}

	a.semanticType = String
	a.qualifier = NoQualifier
	a.patternRegExp = `.+`
	a.finalizeStringBounds()
}

func (a *analyzer) longParsableRatio() float64 {
	total, ok := 0, 0
	for k, c := range a.cardinality {
		total += int(c)
		if longParsable(k) {
			ok += int(c)
		}
	}
	for k, c := range a.outliers {
		total += int(c)
		if longParsable(k) {
			ok += int(c)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total)
}

func (a *analyzer) migrateLongOutliersToCardinality() {
	for k, c := range a.outliers {
		v, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		delete(a.outliers, k)
		a.matchCount += c
		a.insertCardinalityN(k, c)

		if !a.haveLong || v < a.minLong {
			a.minLong = v
		}
		if !a.haveLong || v > a.maxLong {
			a.maxLong = v
		}
		a.haveLong = true
		for i := int64(0); i < c; i++ {
			a.sum.addLong(v)
		}
	}
}

// reflectSignedLong is §4.6's "Long with sign" rule.
func (a *analyzer) reflectSignedLong() {
	if a.semanticType == Long && a.qualifier == NoQualifier && a.negativeLongs > 0 {
		a.qualifier = Signed
	}
}

// reflectLongDate is §4.6's "Long that looks like a year or
// yyyyMMdd" rule.
func (a *analyzer) reflectLongDate() {
	if a.semanticType != Long || a.qualifier != NoQualifier {
		return
	}
	lower := strings.ToLower(a.name)
	nameHints := strings.Contains(lower, "date") || strings.Contains(lower, "year")
	if !nameHints && int64(len(a.cardinality)) <= 10 {
		return
	}

	if a.allCardinalityInRange(1801, 2029) {
		a.convertLongToDate("yyyy")
	} else if a.allCardinalityInRange(19000101, 20400100) {
		a.convertLongToDate("yyyyMMdd")
	}
}

func (a *analyzer) allCardinalityInRange(lo, hi int64) bool {
	if len(a.cardinality) == 0 {
		return false
	}
	for k := range a.cardinality {
		v, err := strconv.ParseInt(k, 10, 64)
		if err != nil || v < lo || v > hi {
			return false
		}
	}
	return true
}

func (a *analyzer) convertLongToDate(pattern string) {
	pr, err := datetime.CachedResult(pattern, a.datetimeOptions())
	if err != nil {
		return
	}
	a.semanticType = LocalDate
	a.qualifier = NoQualifier
	a.formatString = pattern
	a.dateResult = pr
	a.patternRegExp = pr.GetRegExp()

	a.haveDate = false
	for k := range a.cardinality {
		if err := pr.Parse(k); err == nil {
			a.recordDateExtreme(pr, k)
		}
	}
}

// reflectBooleanBits is §4.6's "Long 0/1 only" rule.
func (a *analyzer) reflectBooleanBits() {
	if a.semanticType != Long || a.qualifier != NoQualifier || len(a.cardinality) != 2 {
		return
	}
	_, has0 := a.cardinality["0"]
	_, has1 := a.cardinality["1"]
	if !has0 || !has1 {
		return
	}
	a.semanticType = Boolean
	a.patternRegExp = `[0|1]`
	a.haveBoolean = true
	a.minBoolean, a.maxBoolean = false, true
}

// finalizeStringBounds is §4.6's "String length finalization" rule.
func (a *analyzer) finalizeStringBounds() {
	lo, hi := a.minTrimmedLength, a.maxTrimmedLength
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	a.stringMinLen, a.stringMaxLen = lo, hi

	switch a.patternRegExp {
	case `\p{Alpha}+`:
		a.patternRegExp = fmt.Sprintf(`\p{Alpha}{%d,%d}`, lo, hi)
	case `\p{Alnum}+`:
		a.patternRegExp = fmt.Sprintf(`\p{Alnum}{%d,%d}`, lo, hi)
	case `.+`, "":
		a.patternRegExp = fmt.Sprintf(`.{%d,%d}`, lo, hi)
	}
}

// reflectBackout is §4.6's conditional backout rule.
func (a *analyzer) reflectBackout() {
	outlierN := a.outlierCount()
	if outlierN == 0 {
		return
	}

	real := a.sampleCount - (a.nullCount + a.blankCount)
	if real <= 0 {
		return
	}
	saturated := int64(len(a.outliers)) >= int64(a.cfg.MaxOutliers)
	badCharRatio := float64(outlierN) / float64(real)

	switch {
	case a.semanticType == String && a.patternRegExp == `\p{Alpha}+` && (saturated || badCharRatio > 0.01) && a.allOutliersAlnum():
		a.promoteAlphaToAlnum()
	case a.semanticType == Long && a.mostOutliersAlnum():
		a.promoteLongToAlnumLength()
	case a.allOutliersDoubleParsable():
		a.promoteToDouble()
	case saturated || badCharRatio > 0.01:
		a.backoutToGeneric()
	}
}

func (a *analyzer) allOutliersAlnum() bool {
	if len(a.outliers) == 0 {
		return false
	}
	for k := range a.outliers {
		if !isAlnumString(k) {
			return false
		}
	}
	return true
}

func (a *analyzer) mostOutliersAlnum() bool {
	if len(a.outliers) == 0 {
		return false
	}
	alnum := 0
	for k := range a.outliers {
		if isAlnumString(k) {
			alnum++
		}
	}
	return alnum*2 > len(a.outliers)
}

func (a *analyzer) allOutliersDoubleParsable() bool {
	if len(a.outliers) == 0 {
		return false
	}
	for k := range a.outliers {
		if _, err := strconv.ParseFloat(k, 64); err != nil {
			return false
		}
	}
	return true
}

// mergeOutliersIntoCardinality drains every outlier key filter
// accepts back into the match/cardinality side of the tracker, per
// §4.6: "moved outliers must be merged into cardinality and their
// contribution to string extremes replayed."
func (a *analyzer) mergeOutliersIntoCardinality(filter func(string) bool, apply func(key string, count int64)) {
	for k, c := range a.outliers {
		if !filter(k) {
			continue
		}
		delete(a.outliers, k)
		a.matchCount += c
		a.insertCardinalityN(k, c)
		if apply != nil {
			apply(k, c)
		}
	}
}

func (a *analyzer) promoteAlphaToAlnum() {
	a.patternRegExp = `\p{Alnum}+`
	a.mergeOutliersIntoCardinality(isAlnumString, func(k string, c int64) {
		for i := int64(0); i < c; i++ {
			a.updateStringExtremes(k)
		}
	})
}

func (a *analyzer) promoteLongToAlnumLength() {
	a.semanticType = String
	a.qualifier = NoQualifier
	a.patternRegExp = `\p{Alnum}+`
	a.mergeOutliersIntoCardinality(isAlnumString, func(k string, c int64) {
		for i := int64(0); i < c; i++ {
			a.updateStringExtremes(k)
		}
	})
	a.finalizeStringBounds()
}

func (a *analyzer) promoteToDouble() {
	a.semanticType = Double
	a.qualifier = NoQualifier
	a.patternRegExp = `\d+\.\d+`
	a.mergeOutliersIntoCardinality(func(string) bool { return true }, func(k string, c int64) {
		v, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return
		}
		if !a.haveDouble || v < a.minDouble {
			a.minDouble = v
		}
		if !a.haveDouble || v > a.maxDouble {
			a.maxDouble = v
		}
		a.haveDouble = true
		for i := int64(0); i < c; i++ {
			a.sum.addDouble(v)
		}
	})
}

func (a *analyzer) backoutToGeneric() {
	a.semanticType = String
	a.qualifier = NoQualifier
	a.patternRegExp = `.+`
	a.mergeOutliersIntoCardinality(func(string) bool { return true }, func(k string, c int64) {
		for i := int64(0); i < c; i++ {
			a.updateStringExtremes(k)
		}
	})
	a.finalizeStringBounds()
}
