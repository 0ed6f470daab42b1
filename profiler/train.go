package profiler

import "strings"

// Train is the Analyzer interface's only mutating entry point (§6): it
// feeds the raw sample through null/blank accounting, length tracking,
// the Sample Window until a type is locked in, and the Streaming
// Tracker afterward.
func (a *analyzer) Train(sample string, isNull bool) bool {
	a.started = true
	a.sampleCount++

	trimmed := strings.TrimSpace(sample)
	isBlank := !isNull && trimmed == ""

	switch {
	case isNull:
		a.nullCount++
	case isBlank:
		a.blankCount++
	}

	rawLen := len([]rune(sample))
	if !a.haveLength || rawLen < a.minRawLength {
		a.minRawLength = rawLen
	}
	if !a.haveLength || rawLen > a.maxRawLength {
		a.maxRawLength = rawLen
	}
	a.haveLength = true

	real := a.sampleCount - (a.nullCount + a.blankCount)
	if !isNull && !isBlank {
		trimmedLen := len([]rune(trimmed))
		if real == 1 {
			a.minTrimmedLength, a.maxTrimmedLength = trimmedLen, trimmedLen
		} else {
			if trimmedLen < a.minTrimmedLength {
				a.minTrimmedLength = trimmedLen
			}
			if trimmedLen > a.maxTrimmedLength {
				a.maxTrimmedLength = trimmedLen
			}
		}
	}

	if a.determined {
		if !isNull && !isBlank {
			a.trackSample(trimmed)
			a.maybeReflect()
		}
		return true
	}

	if !isNull && !isBlank {
		a.window = append(a.window, a.classifyWindowSample(sample, trimmed))
	}

	if real >= int64(a.cfg.SampleSize) && !a.determined && len(a.window) > 0 {
		a.determineType()
	}
	return a.determined
}
