package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressL1UsesCategoryKey(t *testing.T) {
	reg := newPatternRegistry()

	// L0 for "123" is the exact-length shape `\d{3}`, which the
	// registry never keys on directly; L1 must still resolve to the
	// category-level `\d+` generalization via structuralClassKey.
	shape := compress("123", defaultLocaleSymbols, reg)
	assert.Equal(t, `\d+`, shape.L1)

	shape = compress("-123", defaultLocaleSymbols, reg)
	assert.Equal(t, `-?\d+`, shape.L1)

	shape = compress("12.50", defaultLocaleSymbols, reg)
	assert.Equal(t, `\d+\.\d+`, shape.L1)

	shape = compress("abc", defaultLocaleSymbols, reg)
	assert.Equal(t, `\p{Alpha}+`, shape.L1)

	shape = compress("ab12", defaultLocaleSymbols, reg)
	assert.Equal(t, `\p{Alnum}+`, shape.L1)
}

func TestCompressBooleanLiterals(t *testing.T) {
	reg := newPatternRegistry()

	shape := compress("true", defaultLocaleSymbols, reg)
	assert.Equal(t, `(?i)(true|false)`, shape.L1)

	shape = compress("no", defaultLocaleSymbols, reg)
	assert.Equal(t, `(?i)(yes|no)`, shape.L1)
}

func TestStructuralClassKeyRejectsMixedPunctuation(t *testing.T) {
	runs := scanRuns("1,234", defaultLocaleSymbols)
	_, ok := structuralClassKey("1,234", runs)
	assert.False(t, ok)
}
