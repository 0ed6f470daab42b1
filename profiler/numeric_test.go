package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromoteCommutative(t *testing.T) {
	pairs := [][2]numericKind{
		{numLong, numSignedLong},
		{numLong, numDouble},
		{numSignedLong, numDouble},
		{numDouble, numDoubleExp},
		{numSignedDouble, numSignedDoubleExp},
	}

	for _, p := range pairs {
		assert.Equal(t, promote(p[0], p[1]), promote(p[1], p[0]))
	}
}

func TestPromoteIdempotent(t *testing.T) {
	kinds := []numericKind{numLong, numSignedLong, numDouble, numSignedDouble, numDoubleExp, numSignedDoubleExp}
	for _, k := range kinds {
		assert.Equal(t, k, promote(k, k))
	}
}

func TestPromoteJoins(t *testing.T) {
	assert.Equal(t, numSignedLong, promote(numLong, numSignedLong))
	assert.Equal(t, numDouble, promote(numLong, numDouble))
	assert.Equal(t, numSignedDouble, promote(numSignedLong, numDouble))
	assert.Equal(t, numSignedDoubleExp, promote(numSignedDouble, numDoubleExp))
}

func TestPromoteNoneIsIdentity(t *testing.T) {
	assert.Equal(t, numLong, promote(numNone, numLong))
	assert.Equal(t, numLong, promote(numLong, numNone))
}

func TestNumericKindSemanticType(t *testing.T) {
	typ, qual := numSignedLong.semanticType()
	assert.Equal(t, Long, typ)
	assert.Equal(t, Signed, qual)

	typ, qual = numDoubleExp.semanticType()
	assert.Equal(t, Double, typ)
	assert.Equal(t, NoQualifier, qual)
}
