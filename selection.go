package radvis

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EdgeID identifies an edge ("Kante")
type EdgeID int64

// SelectionAdjuster is notified whenever the editor inserts or removes a segment
// so an externally held segment selection keeps pointing to the same logical segment
type SelectionAdjuster interface {
	OnSegmentInserted(edgeID EdgeID, insertedAtIndex int)
	OnSegmentRemoved(edgeID EdgeID, removedIndex int)
}

// NopSelectionAdjuster ignores notifications
type NopSelectionAdjuster struct{}

func (NopSelectionAdjuster) OnSegmentInserted(EdgeID, int) {}
func (NopSelectionAdjuster) OnSegmentRemoved(EdgeID, int)  {}

// Selection keeps selected segment index per edge
type Selection struct {
	mu       sync.RWMutex
	selected map[EdgeID]int
}

// NewSelection returns empty selection
func NewSelection() *Selection {
	return &Selection{
		selected: make(map[EdgeID]int),
	}
}

// Select marks segment of the edge as selected
func (s *Selection) Select(edgeID EdgeID, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[edgeID] = index
}

// Deselect drops selection of the edge
func (s *Selection) Deselect(edgeID EdgeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, edgeID)
}

// Selected returns selected segment index of the edge and whether there is one
func (s *Selection) Selected(edgeID EdgeID) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.selected[edgeID]
	return idx, ok
}

// Edges returns all edges having a selected segment
func (s *Selection) Edges() []EdgeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	edges := make([]EdgeID, 0, len(s.selected))
	for edgeID := range s.selected {
		edges = append(edges, edgeID)
	}
	return edges
}

// OnSegmentInserted shifts selection at or after inserted index
func (s *Selection) OnSegmentInserted(edgeID EdgeID, insertedAtIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.selected[edgeID]
	if !ok {
		return
	}
	if idx >= insertedAtIndex {
		s.selected[edgeID] = idx + 1
	}
}

// OnSegmentRemoved shifts selection after removed index.
// Selection of the removed segment itself moves to its predecessor (or to the first segment)
func (s *Selection) OnSegmentRemoved(edgeID EdgeID, removedIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.selected[edgeID]
	if !ok {
		return
	}
	switch {
	case idx > removedIndex:
		s.selected[edgeID] = idx - 1
	case idx == removedIndex:
		if removedIndex > 0 {
			s.selected[edgeID] = removedIndex - 1
		} else {
			s.selected[edgeID] = 0
		}
	}
}

// SelectionEventType tells what happened to the segment sequence
type SelectionEventType uint16

const (
	SEGMENT_INSERTED = SelectionEventType(iota + 1)
	SEGMENT_REMOVED
	SEGMENT_UNDEFINED = SelectionEventType(0)
)

func (iotaIdx SelectionEventType) String() string {
	if int(iotaIdx) >= len(selectionEventTypeNames) {
		return selectionEventTypeNames[SEGMENT_UNDEFINED]
	}
	return selectionEventTypeNames[iotaIdx]
}

var selectionEventTypeNames = [...]string{"undefined", "inserted", "removed"}

// SelectionEvent is a single notification published by SelectionEvents
type SelectionEvent struct {
	Type   SelectionEventType
	EdgeID EdgeID
	Index  int
}

// Apply replays event on given adjuster
func (event SelectionEvent) Apply(adjuster SelectionAdjuster) error {
	switch event.Type {
	case SEGMENT_INSERTED:
		adjuster.OnSegmentInserted(event.EdgeID, event.Index)
	case SEGMENT_REMOVED:
		adjuster.OnSegmentRemoved(event.EdgeID, event.Index)
	default:
		return errors.Wrapf(ErrInvariantViolation, "unknown selection event type %d", event.Type)
	}
	return nil
}

// SelectionEvents publishes notifications on a buffered channel for subscribers living elsewhere (e.g. a UI store).
// Sending never blocks the editor: when the buffer is full the event is dropped and counted
type SelectionEvents struct {
	C       chan SelectionEvent
	dropped int64
	logger  *zap.Logger
}

// NewSelectionEvents returns publisher with given buffer size (at least 1)
func NewSelectionEvents(size int, logger *zap.Logger) *SelectionEvents {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionEvents{
		C:      make(chan SelectionEvent, size),
		logger: logger,
	}
}

func (events *SelectionEvents) OnSegmentInserted(edgeID EdgeID, insertedAtIndex int) {
	events.publish(SelectionEvent{Type: SEGMENT_INSERTED, EdgeID: edgeID, Index: insertedAtIndex})
}

func (events *SelectionEvents) OnSegmentRemoved(edgeID EdgeID, removedIndex int) {
	events.publish(SelectionEvent{Type: SEGMENT_REMOVED, EdgeID: edgeID, Index: removedIndex})
}

// Dropped returns number of events lost because the buffer was full
func (events *SelectionEvents) Dropped() int64 {
	return atomic.LoadInt64(&events.dropped)
}

func (events *SelectionEvents) publish(event SelectionEvent) {
	select {
	case events.C <- event:
	default:
		atomic.AddInt64(&events.dropped, 1)
		events.logger.Warn("selection event dropped, buffer is full",
			zap.Stringer("type", event.Type),
			zap.Int64("edge_id", int64(event.EdgeID)),
			zap.Int("index", event.Index),
		)
	}
}
