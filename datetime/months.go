package datetime

import "strings"

// MonthAbbrSet is a read-only, locale-specific set of three-letter
// month abbreviations (spec §4.1 "recognize month abbreviations
// matching the locale's short month names").
type MonthAbbrSet struct {
	index map[string]int // upper-cased abbreviation -> 1-based month
}

// NewMonthAbbrSet builds a MonthAbbrSet from twelve abbreviations in
// January..December order.
func NewMonthAbbrSet(abbrs [12]string) *MonthAbbrSet {
	m := &MonthAbbrSet{index: make(map[string]int, 12)}
	for i, a := range abbrs {
		m.index[strings.ToUpper(a)] = i + 1
	}
	return m
}

// Month returns the 1-based month number for abbr, or 0 if abbr is
// not a recognized abbreviation.
func (m *MonthAbbrSet) Month(abbr string) int {
	if m == nil {
		return 0
	}
	return m.index[strings.ToUpper(abbr)]
}

// EnglishMonthAbbrs is the default (English/US) locale's short month
// names. Other locales (reference/monthabbr.go) supply their own array
// via golang.org/x/text/language at the profiler.Config boundary;
// the detector itself only ever consumes a *MonthAbbrSet.
var EnglishMonthAbbrs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var defaultMonthAbbrSet = NewMonthAbbrSet(EnglishMonthAbbrs)
