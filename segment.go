package radvis

import (
	"math"

	"github.com/pkg/errors"
)

// tilingTolerance absorbs float noise when comparing adjacent bounds
const tilingTolerance = 1e-9

// AttributeSegment carries one consistent set of attribute values for a sub-range of an edge
type AttributeSegment struct {
	Attributes      Attributes      `json:"attributes"`
	LinearReference FractionalRange `json:"linearReference"`
}

// Clone returns independent copy of segment
func (seg AttributeSegment) Clone() AttributeSegment {
	return AttributeSegment{
		Attributes:      seg.Attributes.Clone(),
		LinearReference: seg.LinearReference,
	}
}

// WholeEdgeSegment returns segment covering [0,1]
func WholeEdgeSegment(attrs Attributes) AttributeSegment {
	return AttributeSegment{
		Attributes:      attrs,
		LinearReference: FractionalRange{Von: 0, Bis: 1},
	}
}

// copySegments returns new slice with cloned segments
func copySegments(segments []AttributeSegment) []AttributeSegment {
	out := make([]AttributeSegment, len(segments))
	for i := range segments {
		out[i] = segments[i].Clone()
	}
	return out
}

// ValidateTiling checks that segments are sorted, start at 0, end at 1 and have neither gaps nor overlaps
func ValidateTiling(segments []AttributeSegment) error {
	if len(segments) == 0 {
		return errors.Wrap(ErrInvariantViolation, "edge has no segments")
	}
	if !almostEqual(segments[0].LinearReference.Von, 0) {
		return errors.Wrapf(ErrInvariantViolation, "first segment starts at %v", segments[0].LinearReference.Von)
	}
	last := segments[len(segments)-1].LinearReference
	if !almostEqual(last.Bis, 1) {
		return errors.Wrapf(ErrInvariantViolation, "last segment ends at %v", last.Bis)
	}
	for i := range segments {
		if err := segments[i].LinearReference.Validate(); err != nil {
			return errors.Wrapf(err, "segment %d", i)
		}
		if i == 0 {
			continue
		}
		prev := segments[i-1].LinearReference
		if !almostEqual(prev.Bis, segments[i].LinearReference.Von) {
			return errors.Wrapf(ErrInvariantViolation, "segments %d and %d do not touch: %s, %s", i-1, i, prev, segments[i].LinearReference)
		}
	}
	return nil
}

// MoveBoundary moves the bound shared by segments[boundary-1] and segments[boundary] to given fraction.
// It is the range repair step done after InsertAt: the duplicated segment gets its own range this way.
// Input slice is not modified
func MoveBoundary(segments []AttributeSegment, boundary int, at float64) ([]AttributeSegment, error) {
	if boundary < 1 || boundary >= len(segments) {
		return nil, errors.Wrapf(ErrInvariantViolation, "boundary %d out of range [1, %d)", boundary, len(segments))
	}
	left := segments[boundary-1].LinearReference
	right := segments[boundary].LinearReference
	if !(at > left.Von && at < right.Bis) {
		return nil, errors.Wrapf(ErrInvariantViolation, "boundary %v outside of (%v, %v)", at, left.Von, right.Bis)
	}
	out := copySegments(segments)
	out[boundary-1].LinearReference.Bis = at
	out[boundary].LinearReference.Von = at
	return out, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tilingTolerance
}
