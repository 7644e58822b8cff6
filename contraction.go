package osmnav

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// Contraction returns contraction hierarchies prepared for the network
//
// Hierarchies are prepared on first call only. Edge weights are meters, every way segment produces edges in both directions
//
func (net *RoadNetwork) Contraction() (*ch.Graph, error) {
	net.contractionOnce.Do(func() {
		net.contraction, net.contractionErr = net.prepareContraction()
	})
	return net.contraction, net.contractionErr
}

// contractedPath runs shortest path query over contraction hierarchies. Negative cost means no path
func (net *RoadNetwork) contractedPath(source, target int64) (float64, []int64, error) {
	graph, err := net.Contraction()
	if err != nil {
		return -1, nil, err
	}
	net.contractionMu.Lock()
	defer net.contractionMu.Unlock()
	cost, vertices := graph.ShortestPath(source, target)
	return cost, vertices, nil
}

func (net *RoadNetwork) prepareContraction() (*ch.Graph, error) {
	graph := ch.Graph{}
	for _, node := range net.nodes {
		err := graph.CreateVertex(int64(node.ID))
		if err != nil {
			return nil, errors.Wrapf(err, "Can't create vertex for node '%d'", node.ID)
		}
	}
	for _, way := range net.ways {
		for i := 1; i < len(way.References); i++ {
			source := way.References[i-1].Node
			target := way.References[i].Node
			if source.ID == target.ID {
				continue
			}
			cost := Distance(source, target)
			err := graph.AddEdge(int64(source.ID), int64(target.ID), cost)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't add edge '%d'->'%d' of way '%d'", source.ID, target.ID, way.ID)
			}
			err = graph.AddEdge(int64(target.ID), int64(source.ID), cost)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't add edge '%d'->'%d' of way '%d'", target.ID, source.ID, way.ID)
			}
		}
	}
	graph.PrepareContractionHierarchies()
	return &graph, nil
}
