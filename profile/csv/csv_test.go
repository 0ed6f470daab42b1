package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfiler(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("name,color,dob\n")
	for i := 0; i < 25; i++ {
		b.WriteString("John,Blue,03/11/2013\n")
	}

	pr := NewProfiler(&b)
	p, err := pr.Profile()
	require.NoError(t, err)
	require.Len(t, p.Fields, 3)
	require.Equal(t, "LocalDate", p.Fields["dob"].SemanticType)
	require.Equal(t, 2, p.Fields["dob"].Index)
	require.Equal(t, 1, p.Fields["color"].Index)
}
