// Package reference loads the read-only lookup sets the Logical-Type
// Matcher (spec §4.7) tests cardinality evidence against: ZIP codes,
// US states, Canadian provinces, countries, address markers and
// gender tokens, plus the locale's month-abbreviation set the datetime
// package consumes. Zone abbreviations are not loaded here; they come
// from datetime.DefaultZoneNames.
//
// These are explicitly the external collaborators of spec §1/§6: the
// inference core never reads a file itself. Sets built here are
// immutable after construction and safe for concurrent reads, same
// as the process-wide format cache in package datetime.
package reference
