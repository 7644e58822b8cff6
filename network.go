package osmnav

import (
	"sync"

	"github.com/LdDl/ch"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// RoadNetwork owns nodes and ways. It is immutable once built and safe for concurrent reads
type RoadNetwork struct {
	nodes         []*Node
	ways          []*Way
	nodesIndex    map[osm.NodeID]*Node
	waysIndex     map[osm.WayID]*Way
	intersections []*Node
	bound         orb.Bound

	contractionOnce sync.Once
	contractionMu   sync.Mutex
	contraction     *ch.Graph
	contractionErr  error
}

// Build creates road network from raw nodes and ways
//
// Every way's reference must point to a node from the given set, otherwise *DataIntegrityError is returned
//
func Build(nodes []NodeData, ways []WayData) (*RoadNetwork, error) {
	net := &RoadNetwork{
		nodes:      make([]*Node, 0, len(nodes)),
		ways:       make([]*Way, 0, len(ways)),
		nodesIndex: make(map[osm.NodeID]*Node, len(nodes)),
		waysIndex:  make(map[osm.WayID]*Way, len(ways)),
	}
	for i, nodeData := range nodes {
		if _, ok := net.nodesIndex[nodeData.ID]; ok {
			return nil, errors.Wrapf(ErrDataIntegrity, "duplicate node '%d'", nodeData.ID)
		}
		node := NewNode(nodeData.ID, nodeData.Lat, nodeData.Lon)
		net.nodes = append(net.nodes, node)
		net.nodesIndex[node.ID] = node
		pt := node.Point()
		if i == 0 {
			net.bound = orb.Bound{Min: pt, Max: pt}
		} else {
			net.bound = net.bound.Extend(pt)
		}
	}
	for _, wayData := range ways {
		if _, ok := net.waysIndex[wayData.ID]; ok {
			return nil, errors.Wrapf(ErrDataIntegrity, "duplicate way '%d'", wayData.ID)
		}
		way := &Way{
			ID:         wayData.ID,
			Name:       wayData.Name,
			Highway:    wayData.Highway,
			References: make([]NodeReference, 0, len(wayData.Nodes)),
			positions:  make(map[osm.NodeID][]int, len(wayData.Nodes)),
		}
		for pos, nodeID := range wayData.Nodes {
			node, ok := net.nodesIndex[nodeID]
			if !ok {
				return nil, &DataIntegrityError{WayID: way.ID, NodeID: nodeID, Position: pos}
			}
			way.References = append(way.References, NodeReference{Position: pos, Node: node})
			way.positions[nodeID] = append(way.positions[nodeID], pos)
			node.connectWay(way)
		}
		net.ways = append(net.ways, way)
		net.waysIndex[way.ID] = way
	}
	for _, node := range net.nodes {
		if node.IsIntersection() {
			net.intersections = append(net.intersections, node)
		}
	}
	return net, nil
}

// Lookup returns node by its identifier
func (net *RoadNetwork) Lookup(id osm.NodeID) (*Node, error) {
	node, ok := net.nodesIndex[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "node '%d'", id)
	}
	return node, nil
}

// Way returns way by its identifier
func (net *RoadNetwork) Way(id osm.WayID) (*Way, error) {
	way, ok := net.waysIndex[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "way '%d'", id)
	}
	return way, nil
}

// Nodes returns all nodes in order they were provided to Build
func (net *RoadNetwork) Nodes() []*Node {
	return net.nodes
}

// Ways returns all ways in order they were provided to Build
func (net *RoadNetwork) Ways() []*Way {
	return net.ways
}

// Intersections returns nodes connected to two or more ways. Computed once at build time
func (net *RoadNetwork) Intersections() []*Node {
	return net.intersections
}

// Bound returns bounding box of all nodes
func (net *RoadNetwork) Bound() orb.Bound {
	return net.bound
}

// NearestIntersection snaps given coordinates to the closest intersection
func (net *RoadNetwork) NearestIntersection(lat, lon float64) (*Node, error) {
	if len(net.intersections) == 0 {
		return nil, ErrEmptyNetwork
	}
	return Nearest(lat, lon, net.intersections)
}

// AdjacentNodes returns nodes which are consecutive to given one in any of its ways. No duplicates
func (net *RoadNetwork) AdjacentNodes(node *Node) []*Node {
	seen := make(map[osm.NodeID]struct{}, 4)
	result := make([]*Node, 0, 2*len(node.ways))
	for _, way := range node.ways {
		for _, neighbour := range way.neighbours(node.ID) {
			if neighbour.ID == node.ID {
				continue
			}
			if _, ok := seen[neighbour.ID]; ok {
				continue
			}
			seen[neighbour.ID] = struct{}{}
			result = append(result, neighbour)
		}
	}
	return result
}

// ConnectingWay returns first way where a and b are consecutive references
func (net *RoadNetwork) ConnectingWay(a, b *Node) (*Way, error) {
	for _, way := range a.ways {
		if way.connects(a.ID, b.ID) {
			return way, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "no way connects nodes '%d' and '%d'", a.ID, b.ID)
}
