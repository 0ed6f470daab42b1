package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectAllBlankOrNull(t *testing.T) {
	a := newTestAnalyzer()
	a.determined = true
	a.sampleCount = 10
	a.nullCount = 6
	a.blankCount = 4

	a.reflect()

	assert.Equal(t, String, a.semanticType)
	assert.Equal(t, BlankOrNull, a.qualifier)
	assert.Equal(t, 1.0, a.confidence())
}

func TestReflectZipRetractsToLongWhenMostlyNumeric(t *testing.T) {
	a := newTestAnalyzer()
	a.determined = true
	a.semanticType = Long
	a.qualifier = ZIP
	a.sampleCount = 2
	a.matchCount = 2
	a.cardinality = map[string]int64{"12345": 1, "67890": 1}

	a.reflectZip()

	assert.Equal(t, Long, a.semanticType)
	assert.Equal(t, NoQualifier, a.qualifier)
}

func TestReflectZipStaysStringWhenCardinalityIsRich(t *testing.T) {
	a := newTestAnalyzer()
	a.determined = true
	a.semanticType = Long
	a.qualifier = ZIP
	a.sampleCount = 10
	a.matchCount = 10
	a.minTrimmedLength, a.maxTrimmedLength = 5, 5
	a.cardinality = map[string]int64{
		"00501": 2, "00601": 2, "10001": 2, "10002": 2, "11201": 2,
	}

	a.reflectZip()

	assert.Equal(t, String, a.semanticType)
	assert.Equal(t, NoQualifier, a.qualifier)
	assert.Equal(t, `.{5,5}`, a.patternRegExp)
}

func TestReflectSignedLong(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.qualifier = NoQualifier
	a.negativeLongs = 1

	a.reflectSignedLong()

	assert.Equal(t, Signed, a.qualifier)
}

func TestReflectSignedLongNoOpWithoutNegatives(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.qualifier = NoQualifier

	a.reflectSignedLong()

	assert.Equal(t, NoQualifier, a.qualifier)
}

func TestReflectLongDateYearRange(t *testing.T) {
	a := newTestAnalyzer()
	a.name = "year"
	a.semanticType = Long
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"1990": 1, "1991": 1, "1992": 1, "1993": 1, "1994": 1}

	a.reflectLongDate()

	require.Equal(t, LocalDate, a.semanticType)
	assert.Equal(t, "yyyy", a.formatString)
}

func TestReflectLongDateYyyyMMdd(t *testing.T) {
	a := newTestAnalyzer()
	a.name = "date_key"
	a.semanticType = Long
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"20130301": 1, "20130401": 1, "20130501": 1}

	a.reflectLongDate()

	require.Equal(t, LocalDate, a.semanticType)
	assert.Equal(t, "yyyyMMdd", a.formatString)
}

func TestReflectLongDateSkipsWithoutHintOrCardinality(t *testing.T) {
	a := newTestAnalyzer()
	a.name = "amount"
	a.semanticType = Long
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"1990": 1, "1991": 1}

	a.reflectLongDate()

	assert.Equal(t, Long, a.semanticType)
}

func TestReflectBooleanBits(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"0": 5, "1": 7}

	a.reflectBooleanBits()

	assert.Equal(t, Boolean, a.semanticType)
	assert.False(t, a.minBoolean)
	assert.True(t, a.maxBoolean)
}

func TestReflectBackoutPromotesAlphaToAlnum(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = String
	a.patternRegExp = `\p{Alpha}+`
	a.sampleCount = 10
	a.outliers = map[string]int64{"abc123": 1}

	a.reflectBackout()

	assert.Equal(t, `\p{Alnum}+`, a.patternRegExp)
	assert.Equal(t, int64(1), a.matchCount)
	assert.Empty(t, a.outliers)
}

func TestReflectBackoutPromotesLongToAlnum(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.sampleCount = 10
	a.minTrimmedLength, a.maxTrimmedLength = 4, 4
	a.outliers = map[string]int64{"a1b2": 1, "c3d4": 1}

	a.reflectBackout()

	assert.Equal(t, String, a.semanticType)
	assert.Equal(t, `\p{Alnum}{4,4}`, a.patternRegExp)
}

func TestReflectBackoutPromotesToDouble(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.sampleCount = 10
	a.outliers = map[string]int64{"1.5": 1, "2.5": 1}

	a.reflectBackout()

	assert.Equal(t, Double, a.semanticType)
	assert.True(t, a.haveDouble)
	assert.Equal(t, 1.5, a.minDouble)
	assert.Equal(t, 2.5, a.maxDouble)
}

func TestReflectBackoutToGeneric(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.sampleCount = 10
	a.outliers = map[string]int64{"#!@": 1, "%^&": 1}

	a.reflectBackout()

	assert.Equal(t, String, a.semanticType)
	assert.Equal(t, NoQualifier, a.qualifier)
}

func TestReflectBackoutNoOpWhenNoOutliers(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = Long
	a.sampleCount = 10

	a.reflectBackout()

	assert.Equal(t, Long, a.semanticType)
}

func TestReflectUniformLengthStringMonthAbbr(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = String
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"jan": 1, "feb": 1, "mar": 1, "apr": 1}

	a.reflectUniformLengthString()

	assert.Equal(t, MonthAbbr, a.qualifier)
}

func TestReflectUniformLengthStringUSState(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = String
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"al": 1, "ak": 1, "az": 1, "ar": 1, "ca": 1}

	a.reflectUniformLengthString()

	assert.Equal(t, NAState, a.qualifier)
}

func TestReflectUniformLengthStringGender(t *testing.T) {
	a := newTestAnalyzer()
	a.semanticType = String
	a.qualifier = NoQualifier
	a.cardinality = map[string]int64{"M": 1, "F": 1, "MALE": 1, "FEMALE": 1}

	a.reflectUniformLengthString()

	assert.Equal(t, Gender, a.qualifier)
}
