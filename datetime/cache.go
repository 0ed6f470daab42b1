package datetime

import "sync"

// cache is the process-wide, read-mostly Date/Time Format Descriptor
// cache (spec §3 "process-wide... never mutated after insertion",
// §5, §9). sync.Map is the standard fit for a map that's read far
// more often than written and never has its entries mutated in
// place, rather than a hand-rolled lock-free structure.
var cache sync.Map // string -> *ParseResult

// CachedResult returns the ParseResult for pattern, detecting and
// building it on first use and reusing it on every subsequent call.
// Insertion is idempotent: concurrent callers racing to populate the
// same key converge on an equivalent result (spec §5).
func CachedResult(pattern string, opts Options) (*ParseResult, error) {
	if v, ok := cache.Load(pattern); ok {
		return v.(*ParseResult), nil
	}

	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}

	f := &Format{Pattern: pattern, Type: inferTypeFromTokens(toks)}
	pr := &ParseResult{format: f, tokens: toks, zones: opts.zones(), months: opts.months()}

	actual, _ := cache.LoadOrStore(pattern, pr)
	return actual.(*ParseResult), nil
}

// CacheResult inserts an already-built ParseResult (e.g. the one
// AsResult built directly from a Detect call, which already knows
// its precise Type) under its format string, if not already present.
func CacheResult(pr *ParseResult) *ParseResult {
	actual, _ := cache.LoadOrStore(pr.GetFormatString(), pr)
	return actual.(*ParseResult)
}

func inferTypeFromTokens(toks []token) Type {
	hasDate, hasTime, hasZone, hasOffset := false, false, false, false
	for _, t := range toks {
		switch t.kind {
		case tokYearShort, tokYearLong, tokMonthNum, tokMonthAbbr, tokDay:
			hasDate = true
		case tokHour, tokMinute, tokSecond:
			hasTime = true
		case tokZone:
			hasZone = true
		case tokOffset:
			hasOffset = true
		}
	}
	switch {
	case hasOffset:
		return OffsetDateTime
	case hasZone:
		return ZonedDateTime
	case hasDate && hasTime:
		return DateTime
	case hasDate:
		return Date
	default:
		return Time
	}
}
