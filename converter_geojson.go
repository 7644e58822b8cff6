package osmnav

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []GeoPoint) string {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon, pts[i].Lat}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// FeatureCollection returns route as GeoJSON features: polyline of the whole route and a point per step
func (route *Route) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if !route.Reachable() {
		return fc
	}
	pts2d := make([][]float64, len(route.Nodes))
	for i, node := range route.Nodes {
		pts2d[i] = []float64{node.Lon, node.Lat}
	}
	line := geojson.NewLineStringFeature(pts2d)
	line.SetProperty("starting_road", route.StartingRoad)
	line.SetProperty("destination_road", route.DestinationRoad)
	line.SetProperty("total_distance", route.TotalDistance)
	line.SetProperty("estimated_seconds", route.EstimatedDuration().Seconds())
	fc.AddFeature(line)
	for i, step := range route.Steps {
		pt := geojson.NewPointFeature([]float64{step.Node.Lon, step.Node.Lat})
		pt.SetProperty("index", i)
		pt.SetProperty("turn", step.Turn.String())
		pt.SetProperty("distance", step.DistanceLabel)
		pt.SetProperty("way_name", step.WayName)
		pt.SetProperty("instruction", step.Instruction())
		fc.AddFeature(pt)
	}
	return fc
}

// GeoJSON returns serialized FeatureCollection of the route
func (route *Route) GeoJSON() ([]byte, error) {
	b, err := route.FeatureCollection().MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal route to GeoJSON")
	}
	return b, nil
}
