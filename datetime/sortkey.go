package datetime

import "strconv"

// SortKey renders input, which must already have matched p.Parse,
// into a fixed-width "YYYYMMDDHHmmss±oooo" string ordered the same
// way regardless of the format's field order or separators. The
// Streaming Tracker (spec §4.5) uses this instead of comparing raw
// sample text so that min/max tracking doesn't depend on whether the
// detected format happens to sort lexicographically (e.g. "MM/dd/yyyy"
// does not, "yyyy-MM-dd" does).
func (p *ParseResult) SortKey(input string) string {
	var year, month, day, hour, minute, second int
	month = 1
	day = 1
	offsetMinutes := 0
	haveOffset := false

	pos := 0
	for _, t := range p.tokens {
		switch t.kind {
		case tokLiteral:
			pos += len(t.text)
		case tokYearShort:
			v, _ := strconv.Atoi(input[pos : pos+2])
			year = 2000 + v
			pos += 2
		case tokYearLong:
			v, _ := strconv.Atoi(input[pos : pos+4])
			year = v
			pos += 4
		case tokMonthNum:
			v, n := readDigits(input, pos, t.width)
			month = v
			pos += n
		case tokMonthAbbr:
			month = p.months.Month(input[pos : pos+3])
			pos += 3
		case tokDay:
			v, n := readDigits(input, pos, t.width)
			day = v
			pos += n
		case tokHour:
			v, n := readDigits(input, pos, t.width)
			hour = v
			pos += n
		case tokMinute:
			v, _ := strconv.Atoi(input[pos : pos+2])
			minute = v
			pos += 2
		case tokSecond:
			v, _ := strconv.Atoi(input[pos : pos+2])
			second = v
			pos += 2
		case tokAmbiguous:
			_, n := readDigits(input, pos, t.width)
			pos += n
		case tokOffset:
			n := offsetWidthChars(t.width)
			sign := 1
			if input[pos] == '-' {
				sign = -1
			}
			body := input[pos+1 : pos+1+n]
			h, m, _, _ := parseOffsetBody(t.width, body)
			offsetMinutes = sign * (h*60 + m)
			haveOffset = true
			pos += 1 + n
		case tokZone:
			pos = len(input)
		}
	}

	key := pad(year, 4) + pad(month, 2) + pad(day, 2) + pad(hour, 2) + pad(minute, 2) + pad(second, 2)
	if haveOffset {
		sign := byte('+')
		v := offsetMinutes
		if v < 0 {
			sign = '-'
			v = -v
		}
		key += string(sign) + pad(v, 4)
	}
	return key
}

func readDigits(input string, pos, width int) (int, int) {
	if width == 2 {
		v, _ := strconv.Atoi(input[pos : pos+2])
		return v, 2
	}
	end := pos + 1
	for end < len(input) && end < pos+2 && isDigitByte(input[end]) {
		end++
	}
	v, _ := strconv.Atoi(input[pos:end])
	return v, end - pos
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
