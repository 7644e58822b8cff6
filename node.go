package osmnav

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Node is a point of road network
type Node struct {
	ID  osm.NodeID
	Lat float64
	Lon float64

	// Populated by Build. Order follows order of ways in network
	ways []*Way
}

// NewNode creates node with no connected ways
func NewNode(id osm.NodeID, lat, lon float64) *Node {
	return &Node{
		ID:  id,
		Lat: lat,
		Lon: lon,
	}
}

// GeoPoint returns coordinates of the node
func (node *Node) GeoPoint() GeoPoint {
	return GeoPoint{Lat: node.Lat, Lon: node.Lon}
}

// Point returns orb representation of the node
func (node *Node) Point() orb.Point {
	return orb.Point{node.Lon, node.Lat}
}

// Ways returns ways which contain the node
func (node *Node) Ways() []*Way {
	return node.ways
}

// IsIntersection reports whether at least two distinct ways meet at the node
func (node *Node) IsIntersection() bool {
	return len(node.ways) >= 2
}

func (node *Node) connectWay(way *Way) {
	for _, w := range node.ways {
		if w == way {
			return
		}
	}
	node.ways = append(node.ways, way)
}
