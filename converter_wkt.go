package radvis

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	return wkt.MarshalString(line)
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt orb.Point) string {
	return wkt.MarshalString(pt)
}
