package osmnav

import (
	"github.com/paulmach/osm"
)

// NodeReference points to the node at given position of way
type NodeReference struct {
	Position int
	Node     *Node
}

// Way is bidirectional road segment
type Way struct {
	ID         osm.WayID
	Name       string
	Highway    HighwayType
	References []NodeReference

	// node -> positions in References. Same node could appear several times (closed ways)
	positions map[osm.NodeID][]int
}

// WayData is raw representation of way before building the network
type WayData struct {
	ID      osm.WayID
	Name    string
	Highway HighwayType
	Nodes   []osm.NodeID
}

// NodeData is raw representation of node before building the network
type NodeData struct {
	ID  osm.NodeID
	Lat float64
	Lon float64
}

// DisplayName returns name of the way or its category when name is empty
func (way *Way) DisplayName() string {
	if way.Name != "" {
		return way.Name
	}
	if way.Highway != 0 {
		return way.Highway.String()
	}
	return ""
}

// Geom returns coordinates of way's nodes
func (way *Way) Geom() []GeoPoint {
	line := make([]GeoPoint, len(way.References))
	for i, ref := range way.References {
		line[i] = ref.Node.GeoPoint()
	}
	return line
}

// LengthMeters returns spherical length of the way
func (way *Way) LengthMeters() float64 {
	return getSphericalLength(way.Geom())
}

// neighbours returns nodes right before and right after every occurrence of given node
func (way *Way) neighbours(nodeID osm.NodeID) []*Node {
	positions := way.positions[nodeID]
	result := make([]*Node, 0, 2*len(positions))
	for _, pos := range positions {
		if pos > 0 {
			result = append(result, way.References[pos-1].Node)
		}
		if pos < len(way.References)-1 {
			result = append(result, way.References[pos+1].Node)
		}
	}
	return result
}

// connects reports whether a and b are consecutive references
func (way *Way) connects(a, b osm.NodeID) bool {
	for _, pos := range way.positions[a] {
		if pos > 0 && way.References[pos-1].Node.ID == b {
			return true
		}
		if pos < len(way.References)-1 && way.References[pos+1].Node.ID == b {
			return true
		}
	}
	return false
}
