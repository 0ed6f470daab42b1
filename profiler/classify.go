package profiler

import "strings"

// classifyGeneralPattern maps a Shape Compressor pattern string — at
// any of the three levels — to the SemanticType/Qualifier it implies,
// by testing the substrings the shape builders are known to emit
// rather than an exact-text registry lookup, since L1/L2 patterns for
// signed/decimal numerics carry '?' optionality the registry's
// canonical RegExp/GeneralPattern fields don't (§4.3's buildL2 forms
// vs. §3's PatternEntry forms).
func classifyGeneralPattern(pattern string) (SemanticType, Qualifier, bool) {
	switch pattern {
	case `(?i)(true|false)`, `(?i)(yes|no)`:
		return Boolean, NoQualifier, true
	case `.+`:
		return String, NoQualifier, true
	}

	switch {
	case strings.Contains(pattern, `\p{Alnum}`):
		return String, NoQualifier, true
	case strings.Contains(pattern, `\p{Alpha}`):
		return String, NoQualifier, true
	case strings.Contains(pattern, `\.`):
		if strings.HasPrefix(pattern, "-") {
			return Double, Signed, true
		}
		return Double, NoQualifier, true
	case strings.Contains(pattern, `\d`):
		if strings.HasPrefix(pattern, "-") {
			return Long, Signed, true
		}
		return Long, NoQualifier, true
	}
	return Unknown, NoQualifier, false
}

// patternNumericKind is the numeric half of classifyGeneralPattern,
// used by frequencyTable.fusedBest to decide whether two competing
// patterns are both lattice nodes eligible for promotion (§4.4 step 2).
func patternNumericKind(pattern string) (numericKind, bool) {
	t, q, ok := classifyGeneralPattern(pattern)
	if !ok || !t.IsNumeric() {
		return numNone, false
	}
	switch {
	case t == Long && q == Signed:
		return numSignedLong, true
	case t == Long:
		return numLong, true
	case t == Double && q == Signed:
		return numSignedDouble, true
	case t == Double:
		return numDouble, true
	}
	return numNone, false
}

// numericKindPattern is the inverse of patternNumericKind: the
// canonical structural pattern text for a fused lattice node.
func numericKindPattern(k numericKind) string {
	switch k {
	case numLong:
		return `\d+`
	case numSignedLong:
		return `-\d+`
	case numDouble, numDoubleExp:
		return `\d+\.\d+`
	case numSignedDouble, numSignedDoubleExp:
		return `-\d+\.\d+`
	}
	return `\d+`
}
