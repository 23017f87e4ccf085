package radvis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSelectionAdjustment(t *testing.T) {
	cases := []struct {
		name     string
		selected int
		inserted int
		removed  int
		expected int
	}{
		{name: "insert before", selected: 2, inserted: 1, removed: -1, expected: 3},
		{name: "insert at", selected: 2, inserted: 2, removed: -1, expected: 3},
		{name: "insert after", selected: 2, inserted: 3, removed: -1, expected: 2},
		{name: "remove before", selected: 2, inserted: -1, removed: 1, expected: 1},
		{name: "remove selected", selected: 2, inserted: -1, removed: 2, expected: 1},
		{name: "remove first selected", selected: 0, inserted: -1, removed: 0, expected: 0},
		{name: "remove after", selected: 2, inserted: -1, removed: 3, expected: 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			selection := NewSelection()
			selection.Select(1, c.selected)
			if c.inserted >= 0 {
				selection.OnSegmentInserted(1, c.inserted)
			}
			if c.removed >= 0 {
				selection.OnSegmentRemoved(1, c.removed)
			}
			idx, ok := selection.Selected(1)
			require.True(t, ok)
			assert.Equal(t, c.expected, idx)
		})
	}
}

func TestSelectionOtherEdges(t *testing.T) {
	selection := NewSelection()
	selection.Select(1, 1)
	selection.OnSegmentInserted(2, 0)
	selection.OnSegmentRemoved(2, 1)

	idx, _ := selection.Selected(1)
	assert.Equal(t, 1, idx)
	_, ok := selection.Selected(2)
	assert.False(t, ok, "notification must not create selection")

	selection.Deselect(1)
	assert.Empty(t, selection.Edges())
}

func TestSelectionEvents(t *testing.T) {
	events := NewSelectionEvents(4, zap.NewNop())
	editor := NewSegmentEditor(events)

	inserted, err := editor.InsertAt(9, threeSegments(), 1)
	require.NoError(t, err)
	_, err = editor.DeleteAt(9, inserted, 3)
	require.NoError(t, err)
	close(events.C)

	received := []SelectionEvent{}
	for event := range events.C {
		received = append(received, event)
	}
	assert.Equal(t, []SelectionEvent{
		{Type: SEGMENT_INSERTED, EdgeID: 9, Index: 1},
		{Type: SEGMENT_REMOVED, EdgeID: 9, Index: 3},
	}, received)
	assert.Zero(t, events.Dropped())

	// Replaying events on a store gives the same result as notifying it directly
	selection := NewSelection()
	selection.Select(9, 2)
	for _, event := range received {
		require.NoError(t, event.Apply(selection))
	}
	idx, _ := selection.Selected(9)
	assert.Equal(t, 2, idx)
}

func TestSelectionEventsFullBuffer(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	events := NewSelectionEvents(1, zap.New(core))
	editor := NewSegmentEditor(events)

	// Nobody receives: the editor must not block
	inserted, err := editor.InsertAt(2, threeSegments(), 1)
	require.NoError(t, err)
	_, err = editor.InsertAt(2, inserted, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(1), events.Dropped())
	assert.Equal(t, 1, logs.FilterMessage("selection event dropped, buffer is full").Len())
	assert.Equal(t, SelectionEvent{Type: SEGMENT_INSERTED, EdgeID: 2, Index: 1}, <-events.C)
}

func TestSelectionEventType(t *testing.T) {
	assert.Equal(t, "inserted", SEGMENT_INSERTED.String())
	assert.Equal(t, "removed", SEGMENT_REMOVED.String())
	assert.Equal(t, "undefined", SelectionEventType(0).String())
	assert.Equal(t, "undefined", SelectionEventType(42).String())

	selection := NewSelection()
	selection.Select(1, 1)
	err := SelectionEvent{EdgeID: 1, Index: 0}.Apply(selection)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	idx, _ := selection.Selected(1)
	assert.Equal(t, 1, idx)
}
