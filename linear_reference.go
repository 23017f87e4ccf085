package radvis

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const (
	// MinimumSegmentLength is the shortest metric range (meters) a segment may cover
	MinimumSegmentLength = 0.01
	// extraFractionDigits is the number of decimals kept on top of the edge length's integer digits
	extraFractionDigits = 3
)

// FractionalRange is a sub-range of an edge expressed as fractions of the edge's length.
// Both bounds are in [0,1] and Von < Bis.
type FractionalRange struct {
	Von float64 `json:"von"`
	Bis float64 `json:"bis"`
}

// NewFractionalRange returns validated FractionalRange
func NewFractionalRange(von, bis float64) (FractionalRange, error) {
	r := FractionalRange{Von: von, Bis: bis}
	if err := r.Validate(); err != nil {
		return FractionalRange{}, err
	}
	return r, nil
}

// Validate checks bounds of the range
func (r FractionalRange) Validate() error {
	if r.Von < 0 || r.Bis > 1 || !(r.Von < r.Bis) {
		return errors.Wrapf(ErrInvariantViolation, "fractional range %s", r)
	}
	return nil
}

// String returns pretty printed value for FractionalRange
func (r FractionalRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Von, r.Bis)
}

// MetricRange is a sub-range of one specific edge in meters.
// It is never persisted, only used while the edge is edited on the map.
type MetricRange struct {
	Von float64 `json:"von"`
	Bis float64 `json:"bis"`
}

// Length returns covered distance (meters)
func (r MetricRange) Length() float64 {
	return r.Bis - r.Von
}

// Validate checks ordering and minimum length of the range
func (r MetricRange) Validate() error {
	if !(r.Von < r.Bis) || r.Length() < MinimumSegmentLength-1e-9 {
		return errors.Wrapf(ErrInvariantViolation, "metric range %s shorter than %v m", r, MinimumSegmentLength)
	}
	return nil
}

// String returns pretty printed value for MetricRange
func (r MetricRange) String() string {
	return fmt.Sprintf("[%.2f m, %.2f m]", r.Von, r.Bis)
}

func checkEdgeLength(edgeLengthMeters float64) error {
	if math.IsNaN(edgeLengthMeters) || math.IsInf(edgeLengthMeters, 0) || edgeLengthMeters <= 0 {
		return errors.Wrapf(ErrInvalidEdgeLength, "got %v", edgeLengthMeters)
	}
	return nil
}

// ToMetric converts fractional range into meters along an edge of given length.
// No rounding is applied.
func ToMetric(r FractionalRange, edgeLengthMeters float64) (MetricRange, error) {
	if err := checkEdgeLength(edgeLengthMeters); err != nil {
		return MetricRange{}, err
	}
	return MetricRange{
		Von: r.Von * edgeLengthMeters,
		Bis: r.Bis * edgeLengthMeters,
	}, nil
}

// ToFractional converts metric range into fractions of the edge length.
//
// Fractions are rounded half-up to FractionDigits(edgeLengthMeters) decimals which keeps
// centimeter accuracy for the edge while leaving headroom for later corrections of its geometry
func ToFractional(r MetricRange, edgeLengthMeters float64) (FractionalRange, error) {
	if err := checkEdgeLength(edgeLengthMeters); err != nil {
		return FractionalRange{}, err
	}
	digits := FractionDigits(edgeLengthMeters)
	return FractionalRange{
		Von: roundHalfUp(r.Von/edgeLengthMeters, digits),
		Bis: roundHalfUp(r.Bis/edgeLengthMeters, digits),
	}, nil
}

// FractionDigits returns number of decimals fractions of an edge with given length are stored with
func FractionDigits(edgeLengthMeters float64) int {
	return numberOfIntegerDigits(math.Round(edgeLengthMeters)) + extraFractionDigits
}

// numberOfIntegerDigits returns count of digits of integer part. Zero has one digit
func numberOfIntegerDigits(v float64) int {
	v = math.Abs(v)
	digits := 1
	for v >= 10 {
		v /= 10
		digits++
	}
	return digits
}

func roundHalfUp(v float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Floor(v*pow+0.5) / pow
}
