package radvis

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// SubstringHaversine returns part of the line between two distances (meters) measured from its start.
// Distances are clamped to the line length
func SubstringHaversine(line orb.LineString, fromMeters, toMeters float64) orb.LineString {
	if len(line) < 2 {
		return line.Clone()
	}
	if fromMeters < 0 {
		fromMeters = 0
	}
	if toMeters < fromMeters {
		toMeters = fromMeters
	}
	result := orb.LineString{}
	cl := 0.0
	ol := 0.0
	started := false
	for i := 1; i < len(line); i++ {
		ol = cl
		segmentLength := geo.DistanceHaversine(line[i-1], line[i])
		cl += segmentLength
		if !started && fromMeters <= cl {
			result = append(result, pointOnSegmentByDistance(line[i-1], line[i], fromMeters-ol, segmentLength))
			started = true
		}
		if !started {
			continue
		}
		if toMeters <= cl {
			result = append(result, pointOnSegmentByDistance(line[i-1], line[i], toMeters-ol, segmentLength))
			return result
		}
		if !result[len(result)-1].Equal(line[i]) {
			result = append(result, line[i])
		}
	}
	if !started {
		// fromMeters is beyond the line: degenerate substring at its end
		last := line[len(line)-1]
		return orb.LineString{last, last}
	}
	return result
}

// pointOnSegmentByDistance returns point on segment [p, q] being distance away from p
func pointOnSegmentByDistance(p, q orb.Point, distance, segmentLength float64) orb.Point {
	if segmentLength == 0 {
		return p
	}
	fraction := distance / segmentLength
	return orb.Point{
		(1-fraction)*p[0] + (fraction * q[0]),
		(1-fraction)*p[1] + (fraction * q[1]),
	}
}
