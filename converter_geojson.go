package radvis

import (
	"github.com/paulmach/orb"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) (string, error) {
	b, err := geojson.NewLineStringGeometry(lineCoordinates(line)).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to GeoJSON")
	}
	return string(b), nil
}

// SegmentsFeatureCollection returns one LineString feature per segment of the edge.
// Properties carry attributes of the segment plus edge id, version and von/bis in fractions and meters
func SegmentsFeatureCollection(kantes ...*Kante) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, kante := range kantes {
		ranges, err := kante.MetricRanges()
		if err != nil {
			return nil, errors.Wrapf(err, "Can't prepare segments of edge %d", kante.ID)
		}
		for i, seg := range kante.Segments {
			line := SubstringHaversine(kante.Geometry, ranges[i].Von, ranges[i].Bis)
			feature := geojson.NewLineStringFeature(lineCoordinates(line))
			for field, value := range seg.Attributes {
				feature.SetProperty(field, value)
			}
			feature.SetProperty("kanteId", int64(kante.ID))
			feature.SetProperty("version", kante.Version)
			feature.SetProperty("segmentIndex", i)
			feature.SetProperty("von", seg.LinearReference.Von)
			feature.SetProperty("bis", seg.LinearReference.Bis)
			feature.SetProperty("vonMeter", ranges[i].Von)
			feature.SetProperty("bisMeter", ranges[i].Bis)
			fc.AddFeature(feature)
		}
	}
	return fc, nil
}

func lineCoordinates(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].Lon(), line[i].Lat()}
	}
	return pts2d
}
