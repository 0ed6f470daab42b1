package reference

import (
	"golang.org/x/text/language"

	"github.com/chop-dbhi/typeprofiler/datetime"
)

// localeMonths holds the curated short-month tables for the locales
// this module ships with. Full CLDR-driven translation is out of
// scope (spec §1 Non-goals: "full locale-aware parsing ... beyond
// decimal/grouping/minus substitution" draws the same line for dates
// as for numbers) — the language.Matcher below only has to pick the
// nearest of these, not synthesize a table for an arbitrary locale.
var localeMonths = map[language.Tag][12]string{
	language.English: datetime.EnglishMonthAbbrs,
	language.French:  {"jan.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	language.German:  {"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sep.", "Okt.", "Nov.", "Dez."},
	language.Spanish: {"ene.", "feb.", "mar.", "abr.", "may.", "jun.", "jul.", "ago.", "sept.", "oct.", "nov.", "dic."},
	language.Italian: {"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
}

var supportedLocaleTags = func() []language.Tag {
	tags := make([]language.Tag, 0, len(localeMonths))
	for t := range localeMonths {
		tags = append(tags, t)
	}
	return tags
}()

// MonthAbbrSetForLocale resolves locale (a BCP 47 tag like "fr-CA" or
// "de") to the nearest supported short-month table via
// language.NewMatcher, falling back to English for an unparseable or
// wholly unsupported tag.
func MonthAbbrSetForLocale(locale string) *datetime.MonthAbbrSet {
	tag, err := language.Parse(locale)
	if err != nil {
		return datetime.NewMonthAbbrSet(datetime.EnglishMonthAbbrs)
	}

	matcher := language.NewMatcher(supportedLocaleTags)
	_, index, conf := matcher.Match(tag)
	if conf == language.No {
		return datetime.NewMonthAbbrSet(datetime.EnglishMonthAbbrs)
	}
	matched := supportedLocaleTags[index]

	return datetime.NewMonthAbbrSet(localeMonths[matched])
}
