package datetime

import (
	"strconv"
	"strings"
)

// ResolutionMode controls how Detect resolves an ambiguous day/month
// digit pair (spec §4.1).
type ResolutionMode uint8

const (
	Auto ResolutionMode = iota
	DayFirst
	MonthFirst
	None
)

// Options configures a Detect call. A zero Options uses the English
// month-abbreviation set and the default zone-abbreviation set.
type Options struct {
	Resolution ResolutionMode
	Months     *MonthAbbrSet
	Zones      *ZoneSet
}

func (o Options) months() *MonthAbbrSet {
	if o.Months != nil {
		return o.Months
	}
	return defaultMonthAbbrSet
}

func (o Options) zones() *ZoneSet {
	if o.Zones != nil {
		return o.Zones
	}
	return defaultZoneSet
}

// Detect is determineFormatString (spec §4.1): total on trimmed
// input, it either returns a format or ok=false — it never panics on
// malformed input.
func Detect(sample string, opts Options) (*Format, bool) {
	trimmed := strings.TrimSpace(sample)
	if trimmed == "" || hasJunkRune(trimmed) {
		return nil, false
	}

	if f, ok := detectTimeOnly(trimmed); ok {
		resolveAmbiguity(f, opts.Resolution)
		return f, true
	}

	if f, ok := detectDateOnly(trimmed, opts); ok {
		resolveAmbiguity(f, opts.Resolution)
		return f, true
	}

	if f, ok := detectDateTime(trimmed, opts); ok {
		resolveAmbiguity(f, opts.Resolution)
		return f, true
	}

	return nil, false
}

// hasJunkRune rejects control characters and non-ASCII codepoints,
// none of which can appear in any recognized format (spec §4.1).
func hasJunkRune(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return true
		}
	}
	return false
}

// --- digit field primitives -------------------------------------------------

type digitField struct {
	text  string
	width int
	value int
}

func parseDigitField(s string) (digitField, bool) {
	if s == "" || len(s) > 4 {
		return digitField{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return digitField{}, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return digitField{}, false
	}
	return digitField{text: s, width: len(s), value: v}, true
}

func placeholderToken(width int) string {
	if width == 1 {
		return "?"
	}
	return "??"
}

func letterToken(letter byte, width int) string {
	if width == 1 {
		return string(letter)
	}
	return strings.Repeat(string(letter), width)
}

// --- time-only ---------------------------------------------------------------

// splitTimeFields splits "H:mm" / "HH:mm" / "H:mm:ss" / "HH:mm:ss"
// into its colon-delimited digit fields.
func splitTimeFields(s string) ([]digitField, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, false
	}
	fields := make([]digitField, 0, len(parts))
	for _, p := range parts {
		f, ok := parseDigitField(p)
		if !ok {
			return nil, false
		}
		fields = append(fields, f)
	}
	return fields, true
}

// parseTimeCore parses a bare time expression with no trailing
// offset/zone; consumed reports how many bytes of s were used so
// callers splitting date+time can find the remainder.
func parseTimeCore(s string) (pattern string, hourLen, consumed int, ok bool) {
	// Greedily take the longest colon-delimited prefix that parses.
	end := len(s)
	for end > 0 {
		candidate := s[:end]
		fields, fok := splitTimeFields(candidate)
		if fok && timeFieldsValid(fields) {
			return renderTime(fields), fields[0].width, end, true
		}
		end--
		for end > 0 && !isTimeBoundaryByte(s[end-1]) {
			end--
		}
	}
	return "", 0, 0, false
}

func isTimeBoundaryByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func timeFieldsValid(fields []digitField) bool {
	if fields[0].width != 1 && fields[0].width != 2 {
		return false
	}
	for _, f := range fields[1:] {
		if f.width != 2 {
			return false
		}
	}
	return true
}

func renderTime(fields []digitField) string {
	var b strings.Builder
	b.WriteString(letterToken('H', fields[0].width))
	b.WriteByte(':')
	b.WriteString("mm")
	if len(fields) == 3 {
		b.WriteByte(':')
		b.WriteString("ss")
	}
	return b.String()
}

func detectTimeOnly(s string) (*Format, bool) {
	fields, ok := splitTimeFields(s)
	if !ok || !timeFieldsValid(fields) {
		return nil, false
	}
	return &Format{
		Pattern:        renderTime(fields),
		Type:           Time,
		TimeFieldCount: len(fields),
		DayPos:         -1,
		MonthPos:       -1,
		YearPos:        -1,
		HourLen:        fields[0].width,
	}, true
}

// --- date-only ---------------------------------------------------------------

// splitDigitFields splits s into exactly 3 digit fields all joined by
// the single-byte separator sep (one of '/', '-', ' ').
func splitDigitFields(s string, sep byte) ([3]digitField, bool) {
	parts := strings.Split(s, string(sep))
	if len(parts) != 3 {
		return [3]digitField{}, false
	}
	var out [3]digitField
	for i, p := range parts {
		f, ok := parseDigitField(p)
		if !ok {
			return [3]digitField{}, false
		}
		out[i] = f
	}
	return out, true
}

// resolveDayMonth disambiguates two non-year digit fields by
// magnitude (spec §4.1). ok=false means the combination is
// impossible (both candidates exceed 12 so neither can be a month).
// resolveDayMonth returns, in field order, the token each of a and b
// resolves to ("d"/"dd" or "M"/"MM"), not a fixed (day,month) pair.
func resolveDayMonth(a, b digitField) (aTok, bTok string, ambiguous, ok bool) {
	if (a.width != 1 && a.width != 2) || (b.width != 1 && b.width != 2) {
		return "", "", false, false
	}
	aGT, bGT := a.value > 12, b.value > 12
	switch {
	case aGT && bGT:
		return "", "", false, false
	case aGT && !bGT:
		return letterToken('d', a.width), letterToken('M', b.width), false, true
	case bGT && !aGT:
		return letterToken('M', a.width), letterToken('d', b.width), false, true
	default:
		return placeholderToken(a.width), placeholderToken(b.width), true, true
	}
}

// resolveDateFields implements the whole of spec §4.1's date-only
// structural rule, unified across the "year first" / "year last"
// cases: a field of width 4 is unambiguously the year; otherwise the
// last field is assumed to be a (2-digit) year and the first two are
// disambiguated by magnitude.
func resolveDateFields(f [3]digitField) (pattern string, dayPos, monthPos, yearPos, dayLen, monthLen, yearLen int, ok bool) {
	if f[0].width == 4 {
		if f[1].width != 2 || f[2].width != 2 {
			return "", 0, 0, 0, 0, 0, 0, false
		}
		return "yyyy\x00MM\x00dd", 2, 1, 0, 2, 2, 4, true
	}

	if f[2].width != 4 && f[2].width != 2 {
		return "", 0, 0, 0, 0, 0, 0, false
	}

	f0Tok, f1Tok, _, dmOK := resolveDayMonth(f[0], f[1])
	if !dmOK {
		return "", 0, 0, 0, 0, 0, 0, false
	}

	yTok := "yy"
	if f[2].width == 4 {
		yTok = "yyyy"
	}

	dayPos, monthPos = 1, 0
	if len(f0Tok) > 0 && (f0Tok[0] == 'd' || f0Tok[0] == '?') {
		dayPos, monthPos = 0, 1
	}

	return f0Tok + "\x00" + f1Tok + "\x00" + yTok, dayPos, monthPos, 2, f[0].width, f[1].width, f[2].width, true
}

// splitPattern turns the NUL-joined internal representation from
// resolveDateFields back into its three rendered tokens in the order
// the fields appear in the sample (e.g. MM,dd,yyyy or yyyy,MM,dd).
func splitPattern(joined string) []string {
	return strings.Split(joined, "\x00")
}

func detectDateOnly(s string, opts Options) (*Format, bool) {
	for _, sep := range []byte{'/', '-', ' '} {
		fields, ok := splitDigitFields(s, sep)
		if !ok {
			continue
		}

		joined, dayPos, monthPos, yearPos, dayLen, monthLen, yearLen, rok := resolveDateFields(fields)
		if !rok {
			continue
		}

		toks := splitPattern(joined)
		pattern := strings.Join(toks, string(sep))
		return &Format{
			Pattern:        pattern,
			Type:           Date,
			DateFieldCount: 3,
			DayPos:         dayPos,
			MonthPos:       monthPos,
			YearPos:        yearPos,
			DayLen:         dayLen,
			MonthLen:       monthLen,
			YearLen:        yearLen,
			DateSep:        sep,
		}, true
	}

	return detectDateOnlyWithAbbr(s, opts)
}

// detectDateOnlyWithAbbr is the alpha-aware counterpart of
// detectDateOnly: exactly one of the three separator-delimited fields
// is a recognized month abbreviation, the other two are digit runs
// for day and year.
func detectDateOnlyWithAbbr(s string, opts Options) (*Format, bool) {
	for _, sep := range []byte{'-', ' ', '/'} {
		parts := strings.Split(s, string(sep))
		if len(parts) != 3 {
			continue
		}

		abbrIdx := -1
		for i, p := range parts {
			if len(p) == 3 && isAlphaOnly(p) {
				abbrIdx = i
				break
			}
		}
		if abbrIdx == -1 {
			continue
		}
		if opts.months().Month(parts[abbrIdx]) == 0 {
			continue
		}

		var digitParts []string
		for i, p := range parts {
			if i != abbrIdx {
				digitParts = append(digitParts, p)
			}
		}

		f0, ok0 := parseDigitField(digitParts[0])
		f1, ok1 := parseDigitField(digitParts[1])
		if !ok0 || !ok1 {
			continue
		}

		// Whichever of the two digit fields is 4 wide is the year;
		// otherwise the one that appears after the abbreviation in
		// the original field order is the year (dd-MMM-yy), else day.
		var dayField, yearField digitField
		switch {
		case f0.width == 4:
			yearField, dayField = f0, f1
		case f1.width == 4:
			yearField, dayField = f1, f0
		case abbrIdx == 1:
			dayField, yearField = f0, f1
		default:
			dayField, yearField = f1, f0
		}

		dTok := letterToken('d', dayField.width)
		yTok := "yy"
		if yearField.width == 4 {
			yTok = "yyyy"
		}

		var tokens []string
		for i := range parts {
			switch i {
			case abbrIdx:
				tokens = append(tokens, "MMM")
			default:
				if parts[i] == dayField.text {
					tokens = append(tokens, dTok)
				} else {
					tokens = append(tokens, yTok)
				}
			}
		}

		return &Format{
			Pattern:        strings.Join(tokens, string(sep)),
			Type:           Date,
			DateFieldCount: 3,
			DateSep:        sep,
			DayLen:         dayField.width,
			MonthLen:       3,
			YearLen:        yearField.width,
		}, true
	}
	return nil, false
}

func isAlphaOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

// --- offsets & named zones ---------------------------------------------------

// detectOffset recognizes a trailing ISO-8601 numeric offset and
// returns its format token plus the rendered text length consumed.
func detectOffset(s string) (token string, consumed int, ok bool) {
	if s == "" {
		return "", 0, false
	}
	sign := s[0]
	if sign != '+' && sign != '-' {
		return "", 0, false
	}
	rest := s[1:]

	variants := []struct {
		width int
		token string
		parse func(string) (hour, min, sec int, ok bool)
	}{
		{2, "x", parseOffsetHH},
		{4, "xx", parseOffsetHHMM},
		{5, "xxx", parseOffsetHHcMM},
		{6, "xxxx", parseOffsetHHMMSS},
		{8, "xxxxx", parseOffsetHHcMMcSS},
	}

	// Prefer the longest match so "+08:00:00" isn't mistaken for xxx.
	for i := len(variants) - 1; i >= 0; i-- {
		v := variants[i]
		if len(rest) < v.width {
			continue
		}
		candidate := rest[:v.width]
		hour, min, sec, pok := v.parse(candidate)
		if !pok {
			continue
		}
		if hour > 18 || min > 59 || sec > 59 {
			continue
		}
		return v.token, 1 + v.width, true
	}
	return "", 0, false
}

func parseOffsetHH(s string) (int, int, int, bool) {
	h, ok := digits2(s)
	return h, 0, 0, ok
}

func parseOffsetHHMM(s string) (int, int, int, bool) {
	h, ok1 := digits2(s[0:2])
	m, ok2 := digits2(s[2:4])
	return h, m, 0, ok1 && ok2
}

func parseOffsetHHcMM(s string) (int, int, int, bool) {
	if s[2] != ':' {
		return 0, 0, 0, false
	}
	h, ok1 := digits2(s[0:2])
	m, ok2 := digits2(s[3:5])
	return h, m, 0, ok1 && ok2
}

func parseOffsetHHMMSS(s string) (int, int, int, bool) {
	h, ok1 := digits2(s[0:2])
	m, ok2 := digits2(s[2:4])
	sec, ok3 := digits2(s[4:6])
	return h, m, sec, ok1 && ok2 && ok3
}

func parseOffsetHHcMMcSS(s string) (int, int, int, bool) {
	if s[2] != ':' || s[5] != ':' {
		return 0, 0, 0, false
	}
	h, ok1 := digits2(s[0:2])
	m, ok2 := digits2(s[3:5])
	sec, ok3 := digits2(s[6:8])
	return h, m, sec, ok1 && ok2 && ok3
}

func digits2(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// --- date + time combination --------------------------------------------------

func detectDateTime(s string, opts Options) (*Format, bool) {
	for _, sep := range []byte{'T', ' '} {
		idx := firstSplit(s, sep)
		for idx >= 0 {
			left, right := s[:idx], s[idx+1:]

			if f, ok := tryDateThenTime(left, right, sep, opts); ok {
				return f, true
			}
			if f, ok := tryTimeThenDate(left, right, sep, opts); ok {
				return f, true
			}

			idx = nextSplit(s, sep, idx)
		}
	}
	return nil, false
}

func firstSplit(s string, sep byte) int {
	return strings.IndexByte(s, sep)
}

func nextSplit(s string, sep byte, from int) int {
	rest := s[from+1:]
	i := strings.IndexByte(rest, sep)
	if i < 0 {
		return -1
	}
	return from + 1 + i
}

func tryDateThenTime(left, right string, sep byte, opts Options) (*Format, bool) {
	dateFmt, ok := dateOnlyFormat(left, opts)
	if !ok {
		return nil, false
	}
	timeFmt, tz, ok := timeWithZoneFormat(right, opts)
	if !ok {
		return nil, false
	}

	merged := *dateFmt
	merged.Pattern = dateFmt.Pattern + renderSep(sep) + timeFmt.Pattern + tz.suffix
	merged.DateTimeSep = sep
	merged.TimeFieldCount = timeFmt.TimeFieldCount
	merged.HourLen = timeFmt.HourLen
	merged.TimeZone = tz.token
	merged.Type = mergedType(tz)
	merged.TimeFirst = false
	return &merged, true
}

func tryTimeThenDate(left, right string, sep byte, opts Options) (*Format, bool) {
	timeFmt, tz, ok := timeWithZoneFormat(left, opts)
	if !ok {
		return nil, false
	}
	dateFmt, ok := dateOnlyFormat(right, opts)
	if !ok {
		return nil, false
	}

	merged := *dateFmt
	merged.Pattern = timeFmt.Pattern + tz.suffix + renderSep(sep) + dateFmt.Pattern
	merged.DateTimeSep = sep
	merged.TimeFieldCount = timeFmt.TimeFieldCount
	merged.HourLen = timeFmt.HourLen
	merged.TimeZone = tz.token
	merged.Type = mergedType(tz)
	merged.TimeFirst = true
	return &merged, true
}

// renderSep renders the literal date/time separator: space passes
// through, 'T' is quoted so it is never mistaken for a pattern letter
// by the token walker in parseresult.go.
func renderSep(sep byte) string {
	if sep == 'T' {
		return "'T'"
	}
	return string(sep)
}

func mergedType(tz zoneSuffix) Type {
	switch {
	case tz.token == " z":
		return ZonedDateTime
	case tz.token != "":
		return OffsetDateTime
	default:
		return DateTime
	}
}

func dateOnlyFormat(s string, opts Options) (*Format, bool) {
	return detectDateOnly(s, opts)
}

type zoneSuffix struct {
	token  string // "", "x".."xxxxx", " z"
	suffix string // the literal text to append to the rendered time pattern
}

// timeWithZoneFormat parses s as "H:mm[:ss]" optionally followed by a
// numeric offset or a named zone.
func timeWithZoneFormat(s string, opts Options) (*Format, zoneSuffix, bool) {
	pattern, hourLen, consumed, ok := parseTimeCore(s)
	if !ok {
		return nil, zoneSuffix{}, false
	}

	rest := s[consumed:]
	tz := zoneSuffix{}

	switch {
	case rest == "":
		// no zone
	case rest[0] == ' ' && opts.zones().Contains(rest[1:]):
		tz = zoneSuffix{token: " z", suffix: " z"}
	case rest[0] == '+' || rest[0] == '-':
		tok, n, offOK := detectOffset(rest)
		if !offOK || n != len(rest) {
			return nil, zoneSuffix{}, false
		}
		tz = zoneSuffix{token: tok, suffix: tok}
	default:
		return nil, zoneSuffix{}, false
	}

	fieldCount := 2
	if strings.Count(pattern, ":") == 2 {
		fieldCount = 3
	}

	return &Format{
		Pattern:        pattern,
		Type:           Time,
		TimeFieldCount: fieldCount,
		HourLen:        hourLen,
		DayPos:         -1,
		MonthPos:       -1,
		YearPos:        -1,
	}, tz, true
}

// --- ambiguity resolution ------------------------------------------------------

// resolveAmbiguity applies a non-None, non-Auto ResolutionMode
// in-place, same as an eager ForceResolve call right after Detect.
func resolveAmbiguity(f *Format, mode ResolutionMode) {
	if !f.HasPlaceholder() {
		return
	}
	switch mode {
	case DayFirst:
		ForceResolve(f, true)
	case MonthFirst:
		ForceResolve(f, false)
	case Auto:
		// Locale-driven resolution is the caller's responsibility
		// (profiler.Config.Locale); Auto without more context keeps
		// the placeholders, same as None, per spec §4.1.
	case None:
	}
}

// ForceResolve rewrites every '?'/'??' placeholder in f.Pattern in
// left-to-right order, alternating day/month starting with the kind
// named by dayFirst (spec §4.1, §8 scenario 2). It mutates f in
// place and is idempotent once no placeholders remain.
func ForceResolve(f *Format, dayFirst bool) {
	var b strings.Builder
	runes := []rune(f.Pattern)
	i := 0
	slot := 0
	for i < len(runes) {
		if runes[i] == '?' {
			width := 1
			if i+1 < len(runes) && runes[i+1] == '?' {
				width = 2
			}
			isDay := (slot == 0) == dayFirst
			if isDay {
				b.WriteString(letterToken('d', width))
			} else {
				b.WriteString(letterToken('M', width))
			}
			i += width
			slot++
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	f.Pattern = b.String()
}
