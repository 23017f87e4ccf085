package radvis

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// KnotenID identifies a node ("Knoten") of the network
type KnotenID int64

// Knoten is a node of the bicycle network
type Knoten struct {
	ID    KnotenID
	Point orb.Point
}

// Kante is an edge of the bicycle network together with its attribute segments
type Kante struct {
	ID           EdgeID
	VonKnotenID  KnotenID
	NachKnotenID KnotenID
	Geometry     orb.LineString
	// Version is the optimistic locking version reported by the attribute service
	Version  int64
	Segments []AttributeSegment
}

// String returns pretty printed value for Kante
func (kante *Kante) String() string {
	return fmt.Sprintf("Kante %d (%d -> %d), %.2f m, %d segment(s)", kante.ID, kante.VonKnotenID, kante.NachKnotenID, kante.LengthMeters(), len(kante.Segments))
}

// LengthMeters returns haversine length of the geometry
func (kante *Kante) LengthMeters() float64 {
	return geo.LengthHaversign(kante.Geometry)
}

// MetricRanges returns ranges of all segments in meters
func (kante *Kante) MetricRanges() ([]MetricRange, error) {
	length := kante.LengthMeters()
	ranges := make([]MetricRange, len(kante.Segments))
	for i := range kante.Segments {
		r, err := ToMetric(kante.Segments[i].LinearReference, length)
		if err != nil {
			return nil, err
		}
		ranges[i] = r
	}
	return ranges, nil
}

// SegmentGeometry returns part of the geometry covered by given fractional range
func (kante *Kante) SegmentGeometry(r FractionalRange) (orb.LineString, error) {
	metric, err := ToMetric(r, kante.LengthMeters())
	if err != nil {
		return nil, err
	}
	return SubstringHaversine(kante.Geometry, metric.Von, metric.Bis), nil
}

// FractionalRangeFromMeters converts range drawn on the map into linear reference of the edge
func (kante *Kante) FractionalRangeFromMeters(r MetricRange) (FractionalRange, error) {
	if err := r.Validate(); err != nil {
		return FractionalRange{}, err
	}
	return ToFractional(r, kante.LengthMeters())
}
