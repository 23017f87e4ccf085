package radvis

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteSelection(t *testing.T) {
	netz := readSampleNetz(t)

	route, err := netz.RouteSelection(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []EdgeID{1, 3}, route)

	route, err = netz.RouteSelection(4, 3)
	require.NoError(t, err)
	assert.Equal(t, []EdgeID{3, 2}, route)

	route, err = netz.RouteSelection(2, 2)
	require.NoError(t, err)
	assert.Empty(t, route)

	_, err = netz.RouteSelection(1, 99)
	assert.Error(t, err)
}

func TestRouteBulkEdit(t *testing.T) {
	netz := readSampleNetz(t)
	route, err := netz.RouteSelection(1, 4)
	require.NoError(t, err)

	segments, err := netz.SelectedSegments(route, NewSelection())
	require.NoError(t, err)
	require.Len(t, segments, 2)

	reconciled, err := ReconcileSegments(segments)
	require.NoError(t, err)
	assert.Equal(t, Undetermined(), reconciled["belagArt"])
	assert.Equal(t, Determined("UNBEKANNT"), reconciled["parkenTyp"])

	form := NewFormModel(reconciled)
	form.Set("parkenTyp", "KEIN_PARKEN")
	form.ApplyToSegments(segments)

	assert.Equal(t, "KEIN_PARKEN", netz.Kanten[1].Segments[0].Attributes["parkenTyp"])
	assert.Equal(t, "KEIN_PARKEN", netz.Kanten[3].Segments[0].Attributes["parkenTyp"])
	assert.Equal(t, "UNBEKANNT", netz.Kanten[2].Segments[0].Attributes["parkenTyp"])
	assert.Equal(t, "asphalt", netz.Kanten[1].Segments[0].Attributes["belagArt"])
	assert.Equal(t, "UNBEKANNT", netz.Kanten[3].Segments[0].Attributes["belagArt"])
}

func TestSelectedSegments(t *testing.T) {
	netz := NewNetz()
	kante := &Kante{
		ID:           1,
		VonKnotenID:  1,
		NachKnotenID: 2,
		Geometry:     orb.LineString{{37, 55}, {37.001, 55}},
		Segments:     threeSegments(),
	}
	require.NoError(t, netz.AddKante(kante))
	assert.Error(t, netz.AddKante(kante), "duplicate edge")

	selection := NewSelection()
	segments, err := netz.SelectedSegments([]EdgeID{1}, selection)
	require.NoError(t, err)
	assert.Len(t, segments, 3)

	selection.Select(1, 2)
	segments, err = netz.SelectedSegments([]EdgeID{1}, selection)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Same(t, &kante.Segments[2], segments[0])

	selection.Select(1, 5)
	_, err = netz.SelectedSegments([]EdgeID{1}, selection)
	assert.ErrorIs(t, err, ErrInvariantViolation)

	_, err = netz.SelectedSegments([]EdgeID{2}, selection)
	assert.Error(t, err)

	broken := &Kante{ID: 2, Geometry: orb.LineString{{37, 55}, {37.001, 55}}, Segments: []AttributeSegment{{LinearReference: FractionalRange{Von: 0, Bis: 0.5}}}}
	assert.ErrorIs(t, netz.AddKante(broken), ErrInvariantViolation)
}
