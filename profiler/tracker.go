package profiler

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/chop-dbhi/typeprofiler/datetime"
)

// trackSample is the Streaming Tracker (§4.5): validate trimmed
// against the locked-in type, updating extremes/sums/cardinality on
// success or the outlier map on failure.
func (a *analyzer) trackSample(trimmed string) {
	switch {
	case a.semanticType == Long:
		a.trackLong(trimmed)
	case a.semanticType == Double:
		a.trackDouble(trimmed)
	case a.semanticType == Boolean:
		a.trackBoolean(trimmed)
	case a.semanticType.IsDateTime():
		a.trackDateTime(trimmed)
	default:
		a.trackString(trimmed)
	}
}

func (a *analyzer) match(s string) {
	a.matchCount++
	a.insertCardinalityN(s, 1)
}

func (a *analyzer) insertCardinalityN(s string, n int64) {
	if c, ok := a.cardinality[s]; ok {
		a.cardinality[s] = c + n
		return
	}
	if int64(len(a.cardinality)) >= int64(a.cfg.MaxCardinality) {
		return
	}
	a.cardinality[s] = n
}

func (a *analyzer) outlier(s string) {
	if c, ok := a.outliers[s]; ok {
		a.outliers[s] = c + 1
		return
	}
	if int64(len(a.outliers)) >= int64(a.cfg.MaxOutliers) {
		a.outlierOverflow++
		return
	}
	a.outliers[s] = 1
}

// outlierCount is the outlierCount term of §8's universal invariant
// sampleCount == matchCount + outlierCount + nullCount + blankCount.
// Occurrences of already-tracked outlier values keep incrementing
// their map entry past the cap; a genuinely new distinct value that
// arrives once the cap is reached is counted here instead of being
// silently dropped from the invariant.
func (a *analyzer) outlierCount() int64 {
	var n int64
	for _, c := range a.outliers {
		n += c
	}
	return n + a.outlierOverflow
}

func hasLeadingZero(s string) bool {
	t := strings.TrimPrefix(s, "-")
	return len(t) > 1 && t[0] == '0'
}

func (a *analyzer) trackLong(s string) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		a.outlier(s)
		return
	}
	if a.qualifier == ZIP && !a.refs.ZIP.Contains(s) {
		a.outlier(s)
		return
	}

	if hasLeadingZero(s) {
		a.totalLeadingZeros++
	}
	if v < 0 {
		a.negativeLongs++
	}
	a.match(s)

	if a.cfg.CollectStatistics {
		if !a.haveLong || v < a.minLong {
			a.minLong = v
		}
		if !a.haveLong || v > a.maxLong {
			a.maxLong = v
		}
		a.haveLong = true
		a.sum.addLong(v)
	}
}

func (a *analyzer) trackDouble(s string) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		a.outlier(s)
		return
	}
	if v < 0 {
		a.negativeDoubles++
	}
	a.match(s)

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if a.cfg.CollectStatistics {
		if !a.haveDouble || v < a.minDouble {
			a.minDouble = v
		}
		if !a.haveDouble || v > a.maxDouble {
			a.maxDouble = v
		}
		a.haveDouble = true
		a.sum.addDouble(v)
	}
}

func (a *analyzer) trackBoolean(s string) {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		v = true
	case "false", "no":
		v = false
	default:
		a.outlier(s)
		return
	}
	a.match(s)

	if a.cfg.CollectStatistics {
		if !a.haveBoolean {
			a.minBoolean, a.maxBoolean = v, v
			a.haveBoolean = true
		} else {
			if !v {
				a.minBoolean = false
			}
			if v {
				a.maxBoolean = true
			}
		}
	}
}

func (a *analyzer) trackString(s string) {
	n := len([]rune(s))
	if a.stringMaxLen >= 0 && (n < a.stringMinLen || n > a.stringMaxLen) {
		a.outlier(s)
		return
	}

	switch a.qualifier {
	case Email:
		if !isValidEmailSyntax(s) {
			a.outlier(s)
			return
		}
	case URL:
		if !isValidURLSyntax(s) {
			a.outlier(s)
			return
		}
	case Address:
		if !a.looksLikeAddress(s) {
			a.outlier(s)
			return
		}
	}

	a.match(s)
	if a.cfg.CollectStatistics {
		a.updateStringExtremes(s)
	}
}

func (a *analyzer) updateStringExtremes(s string) {
	if !a.haveString || s < a.minString {
		a.minString = s
	}
	if !a.haveString || s > a.maxString {
		a.maxString = s
	}
	a.haveString = true
}

func (a *analyzer) trackDateTime(s string) {
	if a.dateResult == nil {
		a.outlier(s)
		return
	}
	if err := a.dateResult.Parse(s); err != nil {
		if a.retryWithRepairedFormat(err, s) {
			return
		}
		a.outlier(s)
		return
	}

	a.match(s)
	if a.cfg.CollectStatistics {
		a.recordDateExtreme(a.dateResult, s)
	}
}

func (a *analyzer) recordDateExtreme(pr *datetime.ParseResult, s string) {
	key := pr.SortKey(s)
	if !a.haveDate || key < a.minDateKey {
		a.minDateKey, a.minDate = key, s
	}
	if !a.haveDate || key > a.maxDateKey {
		a.maxDateKey, a.maxDate = key, s
	}
	a.haveDate = true
}

// retryWithRepairedFormat is the one specific repair §4.5/§7 call for
// by name: on "Insufficient digits in input (d)"/"(M)", delete the
// offending doubled letter from the format and retry once.
func (a *analyzer) retryWithRepairedFormat(parseErr error, s string) bool {
	var pf *datetime.ParseFailure
	if !errors.As(parseErr, &pf) {
		return false
	}
	if pf.Reason != datetime.ReasonInsufficientDigitsDay && pf.Reason != datetime.ReasonInsufficientDigitsMonth {
		return false
	}

	repaired := repairPattern(a.formatString, pf.Reason)
	if repaired == "" {
		return false
	}
	pr, err := datetime.CachedResult(repaired, a.datetimeOptions())
	if err != nil {
		return false
	}
	if err := pr.Parse(s); err != nil {
		return false
	}

	a.formatString = repaired
	a.dateResult = pr
	a.match(s)
	if a.cfg.CollectStatistics {
		a.recordDateExtreme(pr, s)
	}
	return true
}

func repairPattern(pattern, reason string) string {
	var letter byte
	switch reason {
	case datetime.ReasonInsufficientDigitsDay:
		letter = 'd'
	case datetime.ReasonInsufficientDigitsMonth:
		letter = 'M'
	default:
		return ""
	}
	doubled := string(letter) + string(letter)
	idx := strings.Index(pattern, doubled)
	if idx < 0 {
		return ""
	}
	return pattern[:idx] + string(letter) + pattern[idx+2:]
}
