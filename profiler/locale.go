package profiler

import "strings"

// localeSymbolsFor resolves the decimal/grouping/minus substitution
// the Character Classifier applies (§1 Non-goals draw the line at
// "decimal/grouping/minus substitution" — nothing fuller).
func localeSymbolsFor(locale string) localeSymbols {
	switch strings.ToLower(locale) {
	case "de", "de-de", "de-at", "de-ch", "fr", "fr-fr", "es", "es-es", "it", "it-it", "pt-br":
		return localeSymbols{decimal: ',', group: '.', minus: '-'}
	default:
		return defaultLocaleSymbols
	}
}

// localeIsDayFirst is the fallback day/month ordering Auto resolution
// mode falls back to once a window is unanimously date-shaped but
// still ambiguous (spec §4.1 leaves Auto's locale-driven behavior to
// the caller's configuration).
func localeIsDayFirst(locale string) bool {
	switch strings.ToLower(locale) {
	case "", "en", "en-us", "en_us", "en-ca":
		return false
	default:
		return true
	}
}
