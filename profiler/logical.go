package profiler

import (
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/chop-dbhi/typeprofiler/reference"
)

// isValidEmailSyntax backs the ≥90% email-syntax validation of §4.4
// step 4 and the EMAIL qualifier's per-sample check in §4.5's String
// validation row. net/mail is the standard library's own RFC 5322
// address parser — there is nothing in the retrieval pack that does
// this better, so this is one of the few genuinely stdlib-only checks
// (see DESIGN.md).
func isValidEmailSyntax(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// isValidURLSyntax backs the URL qualifier the same way isValidEmailSyntax
// backs EMAIL.
func isValidURLSyntax(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isAlnumString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// computeIsKey is §4.7: sampleCount > 1000, cardinality saturated at
// a cap of at least 500, no nulls/blanks, no qualifier, Long or
// fixed-width String < 32 chars, and every cardinality entry unique.
func (a *analyzer) computeIsKey() bool {
	if a.sampleCount <= 1000 {
		return false
	}
	if a.cfg.MaxCardinality < 500 || int64(len(a.cardinality)) < int64(a.cfg.MaxCardinality) {
		return false
	}
	if a.nullCount > 0 || a.blankCount > 0 {
		return false
	}
	if a.qualifier != NoQualifier {
		return false
	}

	switch {
	case a.semanticType == Long:
	case a.semanticType == String && a.stringMaxLen >= 0 && a.stringMaxLen == a.stringMinLen && a.stringMaxLen < 32:
	default:
		return false
	}

	for _, c := range a.cardinality {
		if c != 1 {
			return false
		}
	}
	return true
}

// uppercasedTrimmedKeys renders the cardinality set's keys the way
// §4.6's uniform-length-string reflection tests them.
func uppercasedTrimmedKeys(cardinality map[string]int64) []string {
	keys := make([]string, 0, len(cardinality))
	for k := range cardinality {
		keys = append(keys, strings.ToUpper(strings.TrimSpace(k)))
	}
	return keys
}

func uniformLength(keys []string) (uniform bool, width int) {
	if len(keys) == 0 {
		return false, 0
	}
	width = len([]rune(keys[0]))
	for _, k := range keys[1:] {
		if len([]rune(k)) != width {
			return false, 0
		}
	}
	return true, width
}

func allAlpha(keys []string) bool {
	for _, k := range keys {
		for _, r := range k {
			if !unicode.IsLetter(r) {
				return false
			}
		}
	}
	return true
}

// reflectUniformLengthString is §4.6's "Uniform-length string
// reflection" rule.
func (a *analyzer) reflectUniformLengthString() {
	if a.semanticType != String || a.qualifier != NoQualifier {
		return
	}
	keys := uppercasedTrimmedKeys(a.cardinality)
	if len(keys) == 0 {
		return
	}
	uniform, width := uniformLength(keys)

	if uniform && width == 3 && len(keys) <= 12+2 {
		if a.testMonthAbbr(keys) {
			return
		}
	}
	if uniform && width == 2 && allAlpha(keys) && len(keys) <= a.refs.USState.Len()+a.refs.CAProvince.Len()+5 {
		if a.testUSCAState(keys) {
			return
		}
	}
	if !uniform {
		a.testGenderOrCountry(keys)
	}
}

func (a *analyzer) testMonthAbbr(keys []string) bool {
	misses := 0
	for _, k := range keys {
		if a.months.Month(k) == 0 {
			misses++
		}
	}
	if misses < 3 {
		a.qualifier = MonthAbbr
		return true
	}
	return false
}

func (a *analyzer) testUSCAState(keys []string) bool {
	missesEither, missesUS, missesCA := 0, 0, 0
	for _, k := range keys {
		inUS := a.refs.USState.Contains(k)
		inCA := a.refs.CAProvince.Contains(k)
		if !inUS {
			missesUS++
		}
		if !inCA {
			missesCA++
		}
		if !inUS && !inCA {
			missesEither++
		}
	}
	switch {
	case missesEither < 3:
		a.qualifier = NAState
	case missesUS < 3:
		a.qualifier = USState
	case missesCA < 3:
		a.qualifier = CAProvince
	default:
		return false
	}
	return true
}

func (a *analyzer) testGenderOrCountry(keys []string) bool {
	if a.testAgainstSet(keys, a.refs.Gender, Gender) {
		return true
	}
	return a.testAgainstSet(keys, a.refs.Country, Country)
}

func (a *analyzer) testAgainstSet(keys []string, set *reference.StringSet, q Qualifier) bool {
	if set.Len() == 0 {
		return false
	}
	misses := 0
	for _, k := range keys {
		if !set.Contains(k) {
			misses++
		}
	}
	missingRatio := float64(misses) / float64(len(keys))
	limit := math.Sqrt(float64(set.Len()))
	if missingRatio <= 0.4 && float64(misses) <= limit {
		a.qualifier = q
		return true
	}
	return false
}

func longParsable(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
