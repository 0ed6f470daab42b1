package profiler

import "unicode"

// charClass is the coarse classification the Shape Compressor folds a
// codepoint into before it looks for runs.
type charClass byte

const (
	classOther charClass = iota
	classDigit
	classAlpha
	classDecimalSep
	classGroupSep
	classMinus
)

// localeSymbols carries the decimal separator, grouping separator and
// minus sign the classifier substitutes for, driven by Config.Locale.
// Only decimal/grouping/minus substitution is in scope (§1 Non-goals);
// full locale-aware numeric parsing is not attempted.
type localeSymbols struct {
	decimal rune
	group   rune
	minus   rune
}

var defaultLocaleSymbols = localeSymbols{decimal: '.', group: ',', minus: '-'}

// classify maps r to its coarse class given the active locale symbols.
func classify(r rune, sym localeSymbols) charClass {
	switch {
	case unicode.IsDigit(r):
		return classDigit
	case r == sym.decimal:
		return classDecimalSep
	case r == sym.group:
		return classGroupSep
	case r == sym.minus:
		return classMinus
	case unicode.IsLetter(r):
		return classAlpha
	default:
		return classOther
	}
}
