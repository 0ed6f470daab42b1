package profiler

import (
	"strconv"
	"strings"
)

// Shape is the L0/L1/L2 triple the Shape Compressor derives from a
// single trimmed sample (§3, §4.3).
type Shape struct {
	L0 string
	L1 string
	L2 string
}

// run is one maximal homogeneous run found while scanning a sample.
type run struct {
	class charClass
	text  string
}

// compress folds a trimmed sample into its three shape strings.
func compress(sample string, sym localeSymbols, reg *patternRegistry) Shape {
	runs := scanRuns(sample, sym)
	l0 := buildL0(runs)

	var l1 string
	if key, ok := structuralClassKey(sample, runs); ok {
		if gp, ok2 := reg.generalPattern(key); ok2 {
			l1 = gp
		}
	}
	if l1 == "" {
		l1 = collapseRuns(runs)
	}

	l2 := buildL2(sample, runs)

	return Shape{L0: l0, L1: l1, L2: l2}
}

// structuralClassKey classifies runs into one of the Pattern
// Registry's known structural categories (§4.3's L1 rule: "if L0 is a
// known entry in the Pattern Registry with a defined general pattern,
// use it"). The registry is keyed by category, not by exact L0 text,
// since a registered general pattern is by definition length-generic.
func structuralClassKey(sample string, runs []run) (string, bool) {
	if isBooleanLiteral(sample, trueFalseWords) {
		return `(?i)(true|false)`, true
	}
	if isBooleanLiteral(sample, yesNoWords) {
		return `(?i)(yes|no)`, true
	}

	hasAlpha, hasDigit, hasDecimal, hasMinus, hasGroup, hasOther := scanComposition(runs)
	if hasOther || hasGroup {
		return "", false
	}

	switch {
	case hasAlpha && hasDigit:
		return `\p{Alnum}+`, true
	case hasAlpha:
		return `\p{Alpha}+`, true
	case hasDecimal && hasMinus:
		return `-\d+\.\d+`, true
	case hasDecimal:
		return `\d+\.\d+`, true
	case hasMinus:
		return `-\d+`, true
	case hasDigit:
		return `\d+`, true
	}
	return "", false
}

// scanRuns walks sample and groups consecutive runes of the same
// coarse class into runs, copying "other" characters through
// verbatim (one rune per run, since they don't collapse).
func scanRuns(sample string, sym localeSymbols) []run {
	var runs []run

	var cur charClass
	var buf strings.Builder
	have := false

	flush := func() {
		if have {
			runs = append(runs, run{class: cur, text: buf.String()})
			buf.Reset()
			have = false
		}
	}

	for _, r := range sample {
		c := classify(r, sym)

		if c == classOther || c == classDecimalSep || c == classGroupSep || c == classMinus {
			// Separator-like classes never merge with neighbours; emit
			// them as their own single-rune run every time.
			flush()
			runs = append(runs, run{class: c, text: string(r)})
			continue
		}

		if have && c == cur {
			buf.WriteRune(r)
			continue
		}

		flush()
		cur = c
		have = true
		buf.WriteRune(r)
	}
	flush()

	return runs
}

// buildL0 renders the exact run-length encoding: \d{n} / \p{Alpha}{n}
// for digit/alpha runs, the literal character otherwise.
func buildL0(runs []run) string {
	var b strings.Builder
	for _, r := range runs {
		writeRunL0(&b, r)
	}
	return b.String()
}

func writeRunL0(b *strings.Builder, r run) {
	n := len([]rune(r.text))
	switch r.class {
	case classDigit:
		b.WriteString(`\d{`)
		b.WriteString(strconv.Itoa(n))
		b.WriteString(`}`)
	case classAlpha:
		b.WriteString(`\p{Alpha}{`)
		b.WriteString(strconv.Itoa(n))
		b.WriteString(`}`)
	default:
		b.WriteString(escapeLiteral(r.text))
	}
}

// collapseRuns is the L1 fallback when no registered general pattern
// applies: run-length counters become '+'.
func collapseRuns(runs []run) string {
	var b strings.Builder
	for _, r := range runs {
		switch r.class {
		case classDigit:
			b.WriteString(`\d+`)
		case classAlpha:
			b.WriteString(`\p{Alpha}+`)
		default:
			b.WriteString(escapeLiteral(r.text))
		}
	}
	return b.String()
}

// buildL2 derives the broadest shape: boolean literal special cases,
// numeric signed/decimal/exponent forms, \p{Alpha}+ for pure letters,
// \p{Alnum}{n} for a fixed-length alpha+digit mix, else `.+`.
func buildL2(sample string, runs []run) string {
	if isBooleanLiteral(sample, trueFalseWords) {
		return `(?i)(true|false)`
	}
	if isBooleanLiteral(sample, yesNoWords) {
		return `(?i)(yes|no)`
	}

	hasAlpha, hasDigit, hasDecimal, hasMinus, hasGroup, hasOther := scanComposition(runs)

	if hasAlpha && !hasOther && !hasDecimal && !hasMinus && !hasGroup {
		return `\p{Alpha}+`
	}

	if !hasAlpha && !hasOther {
		switch {
		case hasDecimal && hasMinus:
			return `-?(\d+)?\.\d+`
		case hasDecimal:
			return `(\d+)?\.\d+`
		case hasMinus:
			return `-?\d+`
		case hasDigit:
			return `\d+`
		}
	}

	alphas, digits, length := alnumCounts(sample)
	if alphas > 0 && digits > 0 && alphas+digits == length {
		return `\p{Alnum}{` + strconv.Itoa(length) + `}`
	}

	return `.+`
}

var trueFalseWords = [2]string{"true", "false"}
var yesNoWords = [2]string{"yes", "no"}

func isBooleanLiteral(sample string, words [2]string) bool {
	lower := strings.ToLower(sample)
	return lower == words[0] || lower == words[1]
}

func scanComposition(runs []run) (hasAlpha, hasDigit, hasDecimal, hasMinus, hasGroup, hasOther bool) {
	for _, r := range runs {
		switch r.class {
		case classAlpha:
			hasAlpha = true
		case classDigit:
			hasDigit = true
		case classDecimalSep:
			hasDecimal = true
		case classMinus:
			hasMinus = true
		case classGroupSep:
			hasGroup = true
		case classOther:
			hasOther = true
		}
	}
	return
}

func alnumCounts(sample string) (alphas, digits, length int) {
	for _, r := range sample {
		length++
		switch {
		case classify(r, defaultLocaleSymbols) == classAlpha:
			alphas++
		case classify(r, defaultLocaleSymbols) == classDigit:
			digits++
		}
	}
	return
}

// escapeLiteral escapes regexp metacharacters in a literal separator
// run so L0/L1 are usable directly as Go regexps.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
