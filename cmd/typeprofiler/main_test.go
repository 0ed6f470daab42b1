package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chop-dbhi/typeprofiler/profiler"
)

func TestResolutionModeFromFlag(t *testing.T) {
	assert.Equal(t, profiler.DayFirst, resolutionModeFromFlag("day-first"))
	assert.Equal(t, profiler.MonthFirst, resolutionModeFromFlag("month-first"))
	assert.Equal(t, profiler.None, resolutionModeFromFlag("none"))
	assert.Equal(t, profiler.Auto, resolutionModeFromFlag("auto"))
	assert.Equal(t, profiler.Auto, resolutionModeFromFlag("garbage"))
}

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["profile"])
	assert.True(t, names["validate"])
	assert.True(t, names["load"])
}
