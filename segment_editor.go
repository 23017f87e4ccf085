package radvis

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SegmentEditor performs array surgery on attribute segments of an edge and keeps selection in sync.
// It never resizes ranges on its own except in SplitAt and RemoveAndMerge
type SegmentEditor struct {
	adjuster SelectionAdjuster
	logger   *zap.Logger
}

// NewSegmentEditor returns editor notifying given adjuster. Nil adjuster means no notifications
func NewSegmentEditor(adjuster SelectionAdjuster, options ...func(*SegmentEditor)) *SegmentEditor {
	if adjuster == nil {
		adjuster = NopSelectionAdjuster{}
	}
	editor := &SegmentEditor{
		adjuster: adjuster,
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(editor)
	}
	return editor
}

// WithLogger sets logger for editor
func WithLogger(logger *zap.Logger) func(*SegmentEditor) {
	return func(editor *SegmentEditor) {
		if logger != nil {
			editor.logger = logger
		}
	}
}

// InsertAt duplicates segments[index-1] and inserts the copy at index.
//
// Both segments share the same linear reference afterwards: the duplicate is a starting point
// for redrawing on the map, see MoveBoundary and SplitAt
func (editor *SegmentEditor) InsertAt(edgeID EdgeID, segments []AttributeSegment, index int) ([]AttributeSegment, error) {
	if index < 1 || index > len(segments) {
		return nil, errors.Wrapf(ErrInvariantViolation, "insert index %d out of range [1, %d] on edge %d", index, len(segments), edgeID)
	}
	out := make([]AttributeSegment, 0, len(segments)+1)
	out = append(out, segments[:index]...)
	out = append(out, segments[index-1].Clone())
	out = append(out, segments[index:]...)

	editor.logger.Debug("segment inserted", zap.Int64("edge_id", int64(edgeID)), zap.Int("index", index), zap.Int("segments", len(out)))
	editor.adjuster.OnSegmentInserted(edgeID, index)
	return out, nil
}

// DeleteAt removes segments[index]. Freed range is not redistributed, see RemoveAndMerge
func (editor *SegmentEditor) DeleteAt(edgeID EdgeID, segments []AttributeSegment, index int) ([]AttributeSegment, error) {
	if len(segments) <= 1 {
		return nil, errors.Wrapf(ErrInvariantViolation, "can't delete the only segment of edge %d", edgeID)
	}
	if index < 0 || index >= len(segments) {
		return nil, errors.Wrapf(ErrInvariantViolation, "delete index %d out of range [0, %d) on edge %d", index, len(segments), edgeID)
	}
	out := make([]AttributeSegment, 0, len(segments)-1)
	out = append(out, segments[:index]...)
	out = append(out, segments[index+1:]...)

	editor.logger.Debug("segment removed", zap.Int64("edge_id", int64(edgeID)), zap.Int("index", index), zap.Int("segments", len(out)))
	editor.adjuster.OnSegmentRemoved(edgeID, index)
	return out, nil
}

// SplitAt splits segments[index] at given fraction of the edge: both halves keep the attribute values.
// Each half must be at least MinimumSegmentLength long on an edge of given length
func (editor *SegmentEditor) SplitAt(edgeID EdgeID, segments []AttributeSegment, index int, at float64, edgeLengthMeters float64) ([]AttributeSegment, error) {
	if index < 0 || index >= len(segments) {
		return nil, errors.Wrapf(ErrInvariantViolation, "split index %d out of range [0, %d) on edge %d", index, len(segments), edgeID)
	}
	current := segments[index].LinearReference
	left, err := ToMetric(FractionalRange{Von: current.Von, Bis: at}, edgeLengthMeters)
	if err != nil {
		return nil, err
	}
	right, err := ToMetric(FractionalRange{Von: at, Bis: current.Bis}, edgeLengthMeters)
	if err != nil {
		return nil, err
	}
	if err := left.Validate(); err != nil {
		return nil, errors.Wrapf(err, "left part of split on edge %d", edgeID)
	}
	if err := right.Validate(); err != nil {
		return nil, errors.Wrapf(err, "right part of split on edge %d", edgeID)
	}
	// Validate everything before notifying the adjuster
	inserted, err := editor.InsertAt(edgeID, segments, index+1)
	if err != nil {
		return nil, err
	}
	return MoveBoundary(inserted, index+1, at)
}

// RemoveAndMerge removes segments[index] and lets a neighbour take over its range:
// the predecessor is extended, or the successor when the first segment is removed
func (editor *SegmentEditor) RemoveAndMerge(edgeID EdgeID, segments []AttributeSegment, index int) ([]AttributeSegment, error) {
	out, err := editor.DeleteAt(edgeID, segments, index)
	if err != nil {
		return nil, err
	}
	removed := segments[index].LinearReference
	if index > 0 {
		out[index-1].LinearReference.Bis = removed.Bis
	} else {
		out[0].LinearReference.Von = removed.Von
	}
	return out, nil
}
