package osmnav

import (
	"github.com/pkg/errors"
)

// Distance returns great-circle distance between nodes in meters
func Distance(a, b *Node) float64 {
	return greatCircleDistance(a.GeoPoint(), b.GeoPoint())
}

// Bearing returns compass direction of travel from a to b in degrees [0; 360)
func Bearing(a, b *Node) float64 {
	return initialBearing(a.GeoPoint(), b.GeoPoint())
}

// Nearest returns candidate closest to given coordinates. The first one wins on ties
func Nearest(lat, lon float64, candidates []*Node) (*Node, error) {
	if len(candidates) == 0 {
		return nil, errors.Wrap(ErrNotFound, "no candidates provided")
	}
	target := GeoPoint{Lat: lat, Lon: lon}
	best := candidates[0]
	bestDistance := greatCircleDistance(target, best.GeoPoint())
	for _, candidate := range candidates[1:] {
		d := greatCircleDistance(target, candidate.GeoPoint())
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, nil
}
