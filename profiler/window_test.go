package profiler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyTableRanksByCountThenInsertionOrder(t *testing.T) {
	f := newFrequencyTable()
	f.add("b")
	f.add("a")
	f.add("a")
	f.add("c")
	f.add("c")

	ranked := f.ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].key)
	assert.Equal(t, "c", ranked[1].key)
	assert.Equal(t, "b", ranked[2].key)
}

func TestFrequencyTableTiesBreakByInsertionOrder(t *testing.T) {
	f := newFrequencyTable()
	f.add("first")
	f.add("second")

	best, ok := f.best()
	require.True(t, ok)
	assert.Equal(t, "first", best.key)
}

func TestFusedBestJoinsTopTwoNumericEntries(t *testing.T) {
	f := newFrequencyTable()
	for i := 0; i < 5; i++ {
		f.add(`\d+`)
	}
	for i := 0; i < 3; i++ {
		f.add(`-\d+`)
	}

	fused, ok := f.fusedBest()
	require.True(t, ok)
	assert.Equal(t, `-\d+`, fused.key)
	assert.Equal(t, int64(8), fused.count)
}

func TestFusedBestLeavesNonNumericTopAlone(t *testing.T) {
	f := newFrequencyTable()
	f.add(`\p{Alpha}+`)
	f.add(`\p{Alpha}+`)
	f.add(`\d+`)

	fused, ok := f.fusedBest()
	require.True(t, ok)
	assert.Equal(t, `\p{Alpha}+`, fused.key)
	assert.Equal(t, int64(2), fused.count)
}

func TestDetermineTypeSettlesOnLong(t *testing.T) {
	a := newTestAnalyzer()
	for i := 1; i <= 20; i++ {
		trimmed := strconv.Itoa(i)
		a.window = append(a.window, a.classifyWindowSample(trimmed, trimmed))
	}

	a.determineType()

	require.True(t, a.determined)
	assert.Equal(t, Long, a.semanticType)
	assert.Equal(t, int64(20), a.matchCount)
}

func TestDetermineTypeAppliesZipOverride(t *testing.T) {
	a := newTestAnalyzer()
	zips := []string{"00501", "00601", "10001", "10002", "11201"}
	for i := 0; i < 20; i++ {
		z := zips[i%len(zips)]
		a.window = append(a.window, a.classifyWindowSample(z, z))
	}

	a.determineType()

	require.True(t, a.determined)
	assert.Equal(t, Long, a.semanticType)
	assert.Equal(t, ZIP, a.qualifier)
}
