package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInsufficientDigitsRepair(t *testing.T) {
	f := &Format{Pattern: "dd/MM/yyyy", Type: Date}
	pr, err := AsResult(f, Options{})
	require.NoError(t, err)

	err = pr.Parse("1/02/2020")
	require.Error(t, err)
	var pf *ParseFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonInsufficientDigitsDay, pf.Reason)

	repaired := &Format{Pattern: "d/MM/yyyy", Type: Date}
	prRepaired, err := AsResult(repaired, Options{})
	require.NoError(t, err)
	assert.NoError(t, prRepaired.Parse("1/02/2020"))
}

func TestParseZeroAndOverflowDayMonth(t *testing.T) {
	f := &Format{Pattern: "dd/MM/yyyy", Type: Date}
	pr, err := AsResult(f, Options{})
	require.NoError(t, err)

	err = pr.Parse("00/02/2020")
	var pf *ParseFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonZeroDayMonth, pf.Reason)

	err = pr.Parse("32/02/2020")
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonTooLargeDayMonth, pf.Reason)

	err = pr.Parse("15/13/2020")
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonTooLargeDayMonth, pf.Reason)
}

func TestParseMonthAbbreviation(t *testing.T) {
	f := &Format{Pattern: "dd-MMM-yyyy", Type: Date}
	pr, err := AsResult(f, Options{})
	require.NoError(t, err)

	assert.NoError(t, pr.Parse("22-Jan-2010"))

	var pf *ParseFailure
	err = pr.Parse("22-Ja-2010")
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonMonthAbbrIncomplete, pf.Reason)

	err = pr.Parse("22-Xxx-2010")
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonMonthAbbrIncorrect, pf.Reason)
}

func TestParseExtraneousInput(t *testing.T) {
	f := &Format{Pattern: "yyyy-MM-dd", Type: Date}
	pr, err := AsResult(f, Options{})
	require.NoError(t, err)

	err = pr.Parse("2020-01-02extra")
	var pf *ParseFailure
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, ReasonExpectingEndExtraneous, pf.Reason)
}

func TestCachedResultIdempotent(t *testing.T) {
	pr1, err := CachedResult("yyyy-MM-dd", Options{})
	require.NoError(t, err)
	pr2, err := CachedResult("yyyy-MM-dd", Options{})
	require.NoError(t, err)
	assert.Same(t, pr1, pr2)
}
