package reference

import "strings"

// StringSet is a read-only, upper-trim-normalized lookup set (spec
// §6: "Uppercase + trim normalization applies on lookup").
type StringSet struct {
	entries map[string]struct{}
}

func newStringSet(raw []string) *StringSet {
	s := &StringSet{entries: make(map[string]struct{}, len(raw))}
	for _, r := range raw {
		k := normalize(r)
		if k == "" {
			continue
		}
		s.entries[k] = struct{}{}
	}
	return s
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Contains reports set membership under upper-trim normalization.
func (s *StringSet) Contains(value string) bool {
	if s == nil {
		return false
	}
	_, ok := s.entries[normalize(value)]
	return ok
}

// Len returns the number of distinct normalized entries.
func (s *StringSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// MatchRate returns the fraction of values present in the set, used
// by the ≥90% ZIP and address thresholds of determineType's special
// overrides (spec §4.4).
func (s *StringSet) MatchRate(values []string) float64 {
	if len(values) == 0 {
		return 0
	}
	hits := 0
	for _, v := range values {
		if s.Contains(v) {
			hits++
		}
	}
	return float64(hits) / float64(len(values))
}
