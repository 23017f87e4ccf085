package radvis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTiling(t *testing.T) {
	assert.NoError(t, ValidateTiling(threeSegments()))
	assert.NoError(t, ValidateTiling([]AttributeSegment{WholeEdgeSegment(nil)}))

	cases := map[string][]FractionalRange{
		"empty":        {},
		"late start":   {{Von: 0.1, Bis: 1}},
		"early end":    {{Von: 0, Bis: 0.9}},
		"gap":          {{Von: 0, Bis: 0.4}, {Von: 0.5, Bis: 1}},
		"overlap":      {{Von: 0, Bis: 0.6}, {Von: 0.5, Bis: 1}},
		"empty range":  {{Von: 0, Bis: 0.5}, {Von: 0.5, Bis: 0.5}, {Von: 0.5, Bis: 1}},
		"out of order": {{Von: 0.5, Bis: 1}, {Von: 0, Bis: 0.5}},
	}
	for name, ranges := range cases {
		segments := make([]AttributeSegment, len(ranges))
		for i := range ranges {
			segments[i] = AttributeSegment{LinearReference: ranges[i]}
		}
		assert.ErrorIs(t, ValidateTiling(segments), ErrInvariantViolation, name)
	}
}

func TestSaveCommand(t *testing.T) {
	kante := &Kante{ID: 4, Version: 12, Segments: threeSegments()}
	cmd, err := NewSaveCommand(kante)
	require.NoError(t, err)
	assert.Equal(t, EdgeID(4), cmd.KanteID)
	assert.Equal(t, int64(12), cmd.Version)
	assert.Equal(t, kante.Segments, cmd.Segments)

	cmd.Segments[0].Attributes["belagArt"] = "SAND"
	assert.Equal(t, "ASPHALT", kante.Segments[0].Attributes["belagArt"])

	inserted, err := NewSegmentEditor(nil).InsertAt(4, kante.Segments, 1)
	require.NoError(t, err)
	kante.Segments = inserted
	_, err = NewSaveCommand(kante)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}
