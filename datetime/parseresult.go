package datetime

import (
	"strconv"
	"strings"
)

// ParseResult is the cached format descriptor of spec §4.2: built
// once from a format string, then reused to validate every sample
// that claims to match it.
type ParseResult struct {
	format *Format
	tokens []token
	zones  *ZoneSet
	months *MonthAbbrSet
}

// AsResult builds a ParseResult from f. It is the one call spec §7
// kind 3 singles out: if it fails for a format the detector itself
// produced, that is an internal invariant violation, not a sample
// failure — callers that got f from Detect can treat an error here as
// a bug, not user input.
func AsResult(f *Format, opts Options) (*ParseResult, error) {
	toks, err := tokenize(f.Pattern)
	if err != nil {
		return nil, err
	}
	return &ParseResult{format: f, tokens: toks, zones: opts.zones(), months: opts.months()}, nil
}

// GetType returns the temporal Type this result validates.
func (p *ParseResult) GetType() Type { return p.format.Type }

// GetFormatString reassembles the canonical format string.
func (p *ParseResult) GetFormatString() string { return p.format.Pattern }

// GetRegExp synthesizes a regular expression matching the format.
func (p *ParseResult) GetRegExp() string {
	var b strings.Builder
	for _, t := range p.tokens {
		b.WriteString(tokenRegexp(t, p))
	}
	return b.String()
}

func tokenRegexp(t token, p *ParseResult) string {
	switch t.kind {
	case tokLiteral:
		return escapeLiteralRegexp(t.text)
	case tokYearShort:
		return `\d{2}`
	case tokYearLong:
		return `\d{4}`
	case tokMonthNum:
		if t.width == 1 {
			return `\d{1,2}`
		}
		return `\d{2}`
	case tokMonthAbbr:
		return `[A-Za-z]{3}`
	case tokDay:
		if t.width == 1 {
			return `\d{1,2}`
		}
		return `\d{2}`
	case tokHour:
		if t.width == 1 {
			return `\d{1,2}`
		}
		return `\d{2}`
	case tokMinute, tokSecond:
		return `\d{2}`
	case tokAmbiguous:
		if t.width == 1 {
			return `\d{1,2}`
		}
		return `\d{2}`
	case tokOffset:
		switch t.width {
		case 1:
			return `[+-]\d{2}`
		case 2:
			return `[+-]\d{4}`
		case 3:
			return `[+-]\d{2}:\d{2}`
		case 4:
			return `[+-]\d{6}`
		case 5:
			return `[+-]\d{2}:\d{2}:\d{2}`
		}
	case tokZone:
		return `[A-Za-z]+`
	}
	return ""
}

// Parse validates input against the cached format (spec §4.2):
// tokens advance the input in lockstep, each failure mode mapping to
// one of the exact reason strings in errors.go.
func (p *ParseResult) Parse(input string) error {
	pos := 0
	for i, t := range p.tokens {
		var err error
		pos, err = p.consume(t, input, pos, i)
		if err != nil {
			return err
		}
	}
	if pos != len(input) {
		return fail(ReasonExpectingEndExtraneous, pos)
	}
	return nil
}

func (p *ParseResult) consume(t token, input string, pos, tokIdx int) (int, error) {
	switch t.kind {
	case tokLiteral:
		return consumeLiteral(t.text, input, pos)
	case tokYearShort:
		_, newPos, err := consumeFixedDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
		return newPos, err
	case tokYearLong:
		_, newPos, err := consumeFixedDigits(input, pos, 4, ReasonExpectingDigit, ReasonExpectingDigitEOI)
		return newPos, err
	case tokMonthNum:
		return p.consumeDayOrMonth(input, pos, t.width, false)
	case tokDay:
		return p.consumeDayOrMonth(input, pos, t.width, true)
	case tokMonthAbbr:
		return p.consumeMonthAbbr(input, pos)
	case tokHour:
		if t.width == 2 {
			_, newPos, err := consumeFixedDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
			return newPos, err
		}
		_, newPos, err := consumeVariableDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
		return newPos, err
	case tokMinute, tokSecond:
		_, newPos, err := consumeFixedDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
		return newPos, err
	case tokAmbiguous:
		if t.width == 2 {
			_, newPos, err := consumeFixedDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
			return newPos, err
		}
		_, newPos, err := consumeVariableDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
		return newPos, err
	case tokOffset:
		return p.consumeOffset(input, pos, t.width)
	case tokZone:
		return p.consumeZone(input, pos)
	}
	return pos, nil
}

func consumeLiteral(text string, input string, pos int) (int, error) {
	n := len(text)
	if pos+n > len(input) {
		return pos, fail(ReasonExpectingConstCharEOI, pos)
	}
	if input[pos:pos+n] != text {
		return pos, fail(ReasonExpectingConstChar, pos)
	}
	return pos + n, nil
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// consumeFixedDigits consumes exactly n digit characters.
func consumeFixedDigits(input string, pos, n int, badReason, eoiReason string) (int, int, error) {
	if pos+n > len(input) {
		return 0, pos, fail(eoiReason, pos)
	}
	for i := 0; i < n; i++ {
		if !isDigitByte(input[pos+i]) {
			return 0, pos, fail(badReason, pos+i)
		}
	}
	v, _ := strconv.Atoi(input[pos : pos+n])
	return v, pos + n, nil
}

// consumeVariableDigits greedily consumes up to max digit characters,
// requiring at least one.
func consumeVariableDigits(input string, pos, max int, badReason, eoiReason string) (int, int, error) {
	if pos >= len(input) {
		return 0, pos, fail(eoiReason, pos)
	}
	if !isDigitByte(input[pos]) {
		return 0, pos, fail(badReason, pos)
	}
	end := pos + 1
	for end < pos+max && end < len(input) && isDigitByte(input[end]) {
		end++
	}
	v, _ := strconv.Atoi(input[pos:end])
	return v, end, nil
}

// consumeDayOrMonth implements the 'd'/'dd'/'M'/'MM' rows of spec
// §4.2's token table, including the two reasons
// ("Insufficient digits in input (d)"/"(M)") the Streaming Tracker's
// format-repair retry inspects by exact string (§4.5, §7).
func (p *ParseResult) consumeDayOrMonth(input string, pos, width int, isDay bool) (int, error) {
	insufficientReason := ReasonInsufficientDigitsMonth
	if isDay {
		insufficientReason = ReasonInsufficientDigitsDay
	}

	var value, newPos int
	var err error

	if width == 1 {
		value, newPos, err = consumeVariableDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
	} else {
		if pos >= len(input) || !isDigitByte(input[pos]) {
			return pos, fail(ReasonExpectingDigit, pos)
		}
		if pos+1 >= len(input) || !isDigitByte(input[pos+1]) {
			return pos, fail(insufficientReason, pos)
		}
		value, newPos, err = consumeFixedDigits(input, pos, 2, ReasonExpectingDigit, ReasonExpectingDigitEOI)
	}
	if err != nil {
		return pos, err
	}

	if value == 0 {
		return pos, fail(ReasonZeroDayMonth, pos)
	}
	max := 12
	if isDay {
		max = 31
	}
	if value > max {
		return pos, fail(ReasonTooLargeDayMonth, pos)
	}
	return newPos, nil
}

func (p *ParseResult) consumeMonthAbbr(input string, pos int) (int, error) {
	if pos+3 > len(input) {
		return pos, fail(ReasonMonthAbbrIncomplete, pos)
	}
	candidate := input[pos : pos+3]
	for _, r := range candidate {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return pos, fail(ReasonMonthAbbrIncomplete, pos)
		}
	}
	if p.months.Month(candidate) == 0 {
		return pos, fail(ReasonMonthAbbrIncorrect, pos)
	}
	return pos + 3, nil
}

// consumeOffset implements the x/xx/xxx/xxxx/xxxxx row.
func (p *ParseResult) consumeOffset(input string, pos, width int) (int, error) {
	if pos >= len(input) {
		return pos, fail(ReasonExpectingZoneOffsetEOI, pos)
	}
	if input[pos] != '+' && input[pos] != '-' {
		return pos, fail(ReasonExpectingZoneOffsetBad, pos)
	}
	n := offsetWidthChars(width)
	if pos+1+n > len(input) {
		return pos, fail(ReasonExpectingZoneOffsetEOI, pos)
	}
	body := input[pos+1 : pos+1+n]

	hour, minute, second, ok := parseOffsetBody(width, body)
	if !ok {
		return pos, fail(ReasonExpectingZoneOffsetBad, pos)
	}
	if hour > 18 {
		return pos, fail(ReasonExpectingZoneOffsetHour, pos)
	}
	if minute > 59 || second > 59 {
		return pos, fail(ReasonExpectingZoneOffsetMinute, pos)
	}
	return pos + 1 + n, nil
}

func parseOffsetBody(width int, body string) (hour, minute, second int, ok bool) {
	switch width {
	case 1:
		return parseOffsetHH(body)
	case 2:
		return parseOffsetHHMM(body)
	case 3:
		return parseOffsetHHcMM(body)
	case 4:
		return parseOffsetHHMMSS(body)
	case 5:
		return parseOffsetHHcMMcSS(body)
	}
	return 0, 0, 0, false
}

func (p *ParseResult) consumeZone(input string, pos int) (int, error) {
	remainder := input[pos:]
	if remainder == "" || !p.zones.Contains(remainder) {
		return pos, fail(ReasonExpectingZoneBadName(remainder), pos)
	}
	return len(input), nil
}
