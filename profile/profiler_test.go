package profile

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiProfilerTracksOneFieldPerColumn(t *testing.T) {
	p, err := NewProfiler(&Config{SampleSize: 20})
	require.NoError(t, err)

	for i := 1; i <= 20; i++ {
		p.Record("id", strconv.Itoa(i))
		p.Record("name", "alice")
		p.Incr()
	}

	prof := p.Profile()
	require.Len(t, prof.Fields, 2)
	assert.Equal(t, int64(20), prof.RecordCount)
	assert.Equal(t, "Long", prof.Fields["id"].SemanticType)
	assert.True(t, prof.Fields["id"].Unique)
	assert.False(t, prof.Fields["name"].Unique)
}

func TestMultiProfilerRecordsNullAsNullable(t *testing.T) {
	p, err := NewProfiler(&Config{SampleSize: 20})
	require.NoError(t, err)

	for i := 0; i < 15; i++ {
		p.Record("note", "hi")
	}
	for i := 0; i < 5; i++ {
		p.RecordNull("note")
	}
	p.Incr()

	prof := p.Profile()
	assert.True(t, prof.Fields["note"].Nullable)
}

func TestMultiProfilerRespectsIncludeExclude(t *testing.T) {
	p, err := NewProfiler(&Config{Include: []string{"a"}})
	require.NoError(t, err)
	p.Record("a", "1")
	p.Record("b", "2")

	prof := p.Profile()
	assert.Len(t, prof.Fields, 1)
	_, ok := prof.Fields["a"]
	assert.True(t, ok)

	p2, err := NewProfiler(&Config{Exclude: []string{"b"}})
	require.NoError(t, err)
	p2.Record("a", "1")
	p2.Record("b", "2")

	prof2 := p2.Profile()
	assert.Len(t, prof2.Fields, 1)
	_, ok = prof2.Fields["a"]
	assert.True(t, ok)
}

func TestNewProfilerRejectsTooSmallSampleSize(t *testing.T) {
	_, err := NewProfiler(&Config{SampleSize: 5})
	require.Error(t, err)
}

func TestNewProfilerRejectsNegativeMaxCardinality(t *testing.T) {
	_, err := NewProfiler(&Config{MaxCardinality: -1})
	require.Error(t, err)
}

func TestMultiProfilerFieldNamesAreLowercased(t *testing.T) {
	p, err := NewProfiler(&Config{})
	require.NoError(t, err)
	p.Record("Name", "bob")

	prof := p.Profile()
	_, ok := prof.Fields["name"]
	assert.True(t, ok)
}
