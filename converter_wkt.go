package osmnav

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// WKT returns WKT representation of route. Single node route is a POINT, empty route is an empty LINESTRING
func (route *Route) WKT() string {
	switch len(route.Nodes) {
	case 0:
		return wkt.MarshalString(orb.LineString{})
	case 1:
		return wkt.MarshalString(route.Nodes[0].Point())
	default:
		return wkt.MarshalString(route.Points())
	}
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt GeoPoint) string {
	return wkt.MarshalString(pt.Point())
}
