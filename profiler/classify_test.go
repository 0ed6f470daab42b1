package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGeneralPattern(t *testing.T) {
	typ, qual, ok := classifyGeneralPattern(`\d+`)
	assert.True(t, ok)
	assert.Equal(t, Long, typ)
	assert.Equal(t, NoQualifier, qual)

	typ, qual, ok = classifyGeneralPattern(`-\d+`)
	assert.True(t, ok)
	assert.Equal(t, Long, typ)
	assert.Equal(t, Signed, qual)

	typ, qual, ok = classifyGeneralPattern(`\d+\.\d+`)
	assert.True(t, ok)
	assert.Equal(t, Double, typ)

	typ, qual, ok = classifyGeneralPattern(`\p{Alpha}+`)
	assert.True(t, ok)
	assert.Equal(t, String, typ)

	_, _, ok = classifyGeneralPattern(`$$$`)
	assert.False(t, ok)
}

func TestPatternNumericKindRoundTrip(t *testing.T) {
	kind, ok := patternNumericKind(`\d+`)
	assert.True(t, ok)
	assert.Equal(t, numLong, kind)
	assert.Equal(t, `\d+`, numericKindPattern(kind))

	kind, ok = patternNumericKind(`-\d+\.\d+`)
	assert.True(t, ok)
	assert.Equal(t, numSignedDouble, kind)

	_, ok = patternNumericKind(`\p{Alpha}+`)
	assert.False(t, ok)
}
