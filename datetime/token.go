package datetime

import "strings"

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokYearShort
	tokYearLong
	tokMonthNum
	tokMonthAbbr
	tokDay
	tokHour
	tokMinute
	tokSecond
	tokAmbiguous
	tokOffset
	tokZone
)

type token struct {
	kind  tokenKind
	width int    // digit width for numeric tokens; offset-variant index (1..5) for tokOffset
	text  string // literal text for tokLiteral
}

// tokenize walks a canonical format string (spec §4.2's token
// vocabulary) into an ordered token list. It is the inverse of the
// rendering helpers in detect.go and is total on any string Detect
// could have produced; a malformed, hand-written format string (e.g.
// "yyy") is an internal-invariant violation (spec §7 kind 3), not a
// sample-level parse failure, so tokenize returns a plain error.
func tokenize(pattern string) ([]token, error) {
	var toks []token
	runes := []rune(pattern)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case r == '\'':
			j := i + 1
			for j < len(runes) && runes[j] != '\'' {
				j++
			}
			if j >= len(runes) {
				return nil, errUnbalancedQuote
			}
			toks = append(toks, token{kind: tokLiteral, text: string(runes[i+1 : j])})
			i = j + 1

		case r == 'y':
			n := runLength(runes, i, 'y')
			switch n {
			case 2:
				toks = append(toks, token{kind: tokYearShort, width: 2})
			case 4:
				toks = append(toks, token{kind: tokYearLong, width: 4})
			default:
				return nil, errBadYearRun
			}
			i += n

		case r == 'M':
			n := runLength(runes, i, 'M')
			switch n {
			case 1, 2:
				toks = append(toks, token{kind: tokMonthNum, width: n})
			case 3:
				toks = append(toks, token{kind: tokMonthAbbr, width: 3})
			default:
				return nil, errBadMonthRun
			}
			i += n

		case r == 'd':
			n := runLength(runes, i, 'd')
			if n != 1 && n != 2 {
				return nil, errBadDayRun
			}
			toks = append(toks, token{kind: tokDay, width: n})
			i += n

		case r == 'H':
			n := runLength(runes, i, 'H')
			if n != 1 && n != 2 {
				return nil, errBadHourRun
			}
			toks = append(toks, token{kind: tokHour, width: n})
			i += n

		case r == 'm':
			n := runLength(runes, i, 'm')
			if n != 2 {
				return nil, errBadMinuteRun
			}
			toks = append(toks, token{kind: tokMinute, width: 2})
			i += n

		case r == 's':
			n := runLength(runes, i, 's')
			if n != 2 {
				return nil, errBadSecondRun
			}
			toks = append(toks, token{kind: tokSecond, width: 2})
			i += n

		case r == '?':
			n := runLength(runes, i, '?')
			if n != 1 && n != 2 {
				return nil, errBadAmbiguousRun
			}
			toks = append(toks, token{kind: tokAmbiguous, width: n})
			i += n

		case r == 'x':
			n := runLength(runes, i, 'x')
			if n < 1 || n > 5 {
				return nil, errBadOffsetRun
			}
			toks = append(toks, token{kind: tokOffset, width: n})
			i += n

		case r == 'z':
			toks = append(toks, token{kind: tokZone})
			i++

		default:
			toks = append(toks, token{kind: tokLiteral, text: string(r)})
			i++
		}
	}

	return toks, nil
}

func runLength(runes []rune, start int, r rune) int {
	n := 0
	for start+n < len(runes) && runes[start+n] == r {
		n++
	}
	return n
}

var (
	errUnbalancedQuote = tokenizeError("unbalanced quote in format string")
	errBadYearRun       = tokenizeError("year token must be 'yy' or 'yyyy'")
	errBadMonthRun      = tokenizeError("month token must be 'M', 'MM' or 'MMM'")
	errBadDayRun        = tokenizeError("day token must be 'd' or 'dd'")
	errBadHourRun       = tokenizeError("hour token must be 'H' or 'HH'")
	errBadMinuteRun     = tokenizeError("minute token must be 'mm'")
	errBadSecondRun     = tokenizeError("second token must be 'ss'")
	errBadAmbiguousRun  = tokenizeError("ambiguous-field token must be '?' or '??'")
	errBadOffsetRun     = tokenizeError("offset token must be between 'x' and 'xxxxx'")
)

type tokenizeError string

func (e tokenizeError) Error() string { return string(e) }

// offsetWidthChars returns, for an 'x'-run of the given width, how
// many characters follow the sign in the rendered value.
func offsetWidthChars(width int) int {
	switch width {
	case 1:
		return 2
	case 2:
		return 4
	case 3:
		return 5
	case 4:
		return 6
	case 5:
		return 8
	}
	return 0
}

func escapeLiteralRegexp(s string) string {
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
