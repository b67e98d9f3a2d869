package mammo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/mammo.go/pkg/mammo/tag"
)

func TestParsePixelSpacing(t *testing.T) {
	cases := []struct {
		in       string
		row, col float64
	}{
		{`0.1\0.1`, 0.1, 0.1},
		{"0.065 0.065", 0.065, 0.065},
		{"[0.1, 0.2]", 0.1, 0.2},
		{`1e-1\2e-1`, 0.1, 0.2},
	}
	for _, c := range cases {
		ps, err := ParsePixelSpacing(c.in)
		require.NoError(t, err, c.in)
		assert.InDelta(t, c.row, ps.Row, 1e-9, c.in)
		assert.InDelta(t, c.col, ps.Col, 1e-9, c.in)
	}
}

func TestParsePixelSpacing_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0.1"} {
		_, err := ParsePixelSpacing(in)
		require.Error(t, err, in)
		var perr ParseError
		assert.ErrorAs(t, err, &perr, in)
	}
}

func TestPixelSpacing_String(t *testing.T) {
	assert.Equal(t, "0.1 x 0.2 mm", PixelSpacing{Row: 0.1, Col: 0.2}.String())
}

func TestExtractPixelSpacing(t *testing.T) {
	ds, err := NewDataset(WithElement(tag.PixelSpacing, `0.07\0.07`))
	require.NoError(t, err)
	ps, ok := ExtractPixelSpacing(ds)
	require.True(t, ok)
	assert.InDelta(t, 0.07, ps.Row, 1e-9)
	assert.InDelta(t, 0.07, ps.Col, 1e-9)
}

func TestExtractPixelSpacing_ImagerFallback(t *testing.T) {
	ds, err := NewDataset(WithElement(tag.ImagerPixelSpacing, `0.085\0.085`))
	require.NoError(t, err)
	ps, ok := ExtractPixelSpacing(ds)
	require.True(t, ok)
	assert.InDelta(t, 0.085, ps.Col, 1e-9)
}

func TestExtractPixelSpacing_Absent(t *testing.T) {
	ds, err := NewDataset()
	require.NoError(t, err)
	_, ok := ExtractPixelSpacing(ds)
	assert.False(t, ok)
}
