package osmnav

import (
	"container/heap"
	"context"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type nodeState uint16

const (
	NODE_UNTESTED = nodeState(iota)
	NODE_OPEN
	NODE_CLOSED
)

func (iotaIdx nodeState) String() string {
	return [...]string{"untested", "open", "closed"}[iotaIdx]
}

// ctxCheckPeriod is number of expansions between context checks
const ctxCheckPeriod = 256

// starData is per-search bookkeeping for single node
type starData struct {
	state  nodeState
	g      float64
	h      float64
	parent *Node
}

func (sd *starData) f() float64 {
	return sd.g + sd.h
}

// PathSearch finds path between two nodes of the same network
//
// Instance keeps its own scratch state, so different instances never interfere. Single instance must not be used concurrently
//
type PathSearch struct {
	net           *RoadNetwork
	start         *Node
	end           *Node
	strategy      SearchStrategy
	maxExpansions int

	scratch    map[osm.NodeID]*starData
	expansions int
}

// SearchOption configures PathSearch
type SearchOption func(*PathSearch)

// WithStrategy sets search algorithm. Default is STRATEGY_ASTAR
func WithStrategy(strategy SearchStrategy) SearchOption {
	return func(ps *PathSearch) {
		ps.strategy = strategy
	}
}

// WithMaxExpansions limits number of expanded nodes. Zero means no limit
func WithMaxExpansions(maxExpansions int) SearchOption {
	return func(ps *PathSearch) {
		ps.maxExpansions = maxExpansions
	}
}

// NewPathSearch prepares search from start to end
func NewPathSearch(net *RoadNetwork, start, end *Node, options ...SearchOption) *PathSearch {
	ps := &PathSearch{
		net:      net,
		start:    start,
		end:      end,
		strategy: STRATEGY_ASTAR,
	}
	for _, option := range options {
		option(ps)
	}
	ps.reset()
	return ps
}

func (ps *PathSearch) reset() {
	ps.expansions = 0
	ps.scratch = make(map[osm.NodeID]*starData)
	ps.scratch[ps.end.ID] = &starData{state: NODE_UNTESTED}
	h := Distance(ps.start, ps.end)
	ps.scratch[ps.start.ID] = &starData{state: NODE_OPEN, g: 0, h: h}
}

// Expansions returns number of nodes expanded by the last FindPath call
func (ps *PathSearch) Expansions() int {
	return ps.expansions
}

// FindPath returns ordered nodes from start to end
//
// Empty slice with nil error means that end is unreachable from start
//
func (ps *PathSearch) FindPath(ctx context.Context) ([]*Node, error) {
	ps.reset()
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "Search interrupted")
	}
	if ps.start.ID == ps.end.ID {
		return []*Node{ps.start}, nil
	}
	switch ps.strategy {
	case STRATEGY_DEPTH_FIRST:
		return ps.depthFirst(ctx)
	case STRATEGY_CONTRACTION:
		return ps.contracted()
	default:
		return ps.aStar(ctx)
	}
}

func (ps *PathSearch) data(node *Node) *starData {
	sd, ok := ps.scratch[node.ID]
	if !ok {
		sd = &starData{state: NODE_UNTESTED}
		ps.scratch[node.ID] = sd
	}
	return sd
}

func (ps *PathSearch) isDestination(node *Node) bool {
	return node.ID == ps.end.ID
}

// expand counts expansion and checks both budget and context
func (ps *PathSearch) expand(ctx context.Context) error {
	ps.expansions++
	if ps.maxExpansions > 0 && ps.expansions > ps.maxExpansions {
		return errors.Wrapf(ErrSearchLimit, "more than %d nodes expanded", ps.maxExpansions)
	}
	if ps.expansions%ctxCheckPeriod == 0 {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "Search interrupted")
		}
	}
	return nil
}

// adjacentCandidates closes current node and returns neighbours worth visiting sorted by F
func (ps *PathSearch) adjacentCandidates(current *Node) []*Node {
	currentData := ps.data(current)
	currentData.state = NODE_CLOSED
	candidates := make([]*Node, 0, 4)
	for _, neighbour := range ps.net.AdjacentNodes(current) {
		sd := ps.data(neighbour)
		switch sd.state {
		case NODE_CLOSED:
			continue
		case NODE_OPEN:
			gTemp := currentData.g + Distance(current, neighbour)
			if gTemp < sd.g {
				sd.g = gTemp
				sd.parent = current
				candidates = append(candidates, neighbour)
			}
		default:
			sd.g = currentData.g + Distance(current, neighbour)
			sd.h = Distance(neighbour, ps.end)
			sd.parent = current
			sd.state = NODE_OPEN
			candidates = append(candidates, neighbour)
		}
	}
	slices.SortStableFunc(candidates, func(a, b *Node) int {
		fa, fb := ps.scratch[a.ID].f(), ps.scratch[b.ID].f()
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	})
	return candidates
}

type dfsFrame struct {
	candidates []*Node
	next       int
}

// depthFirst walks candidates in F order and stops on the first one located at destination
func (ps *PathSearch) depthFirst(ctx context.Context) ([]*Node, error) {
	if err := ps.expand(ctx); err != nil {
		return nil, err
	}
	stack := []*dfsFrame{{candidates: ps.adjacentCandidates(ps.start)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.candidates) {
			// Dead end: backtrack to the next sibling of parent
			stack = stack[:len(stack)-1]
			continue
		}
		candidate := top.candidates[top.next]
		top.next++
		if ps.isDestination(candidate) {
			return ps.reconstruct(candidate), nil
		}
		// Could have been visited by a deeper branch which failed already
		if ps.scratch[candidate.ID].state == NODE_CLOSED {
			continue
		}
		if err := ps.expand(ctx); err != nil {
			return nil, err
		}
		stack = append(stack, &dfsFrame{candidates: ps.adjacentCandidates(candidate)})
	}
	return []*Node{}, nil
}

// aStar is textbook A* over min-heap by F. Closed nodes are reopened when cheaper path is found
func (ps *PathSearch) aStar(ctx context.Context) ([]*Node, error) {
	queue := &starQueue{}
	heap.Init(queue)
	startData := ps.data(ps.start)
	heap.Push(queue, &starItem{node: ps.start, g: startData.g, priority: startData.f()})
	for queue.Len() > 0 {
		item := heap.Pop(queue).(*starItem)
		current := item.node
		currentData := ps.data(current)
		// Stale queue entry
		if item.g > currentData.g {
			continue
		}
		if ps.isDestination(current) {
			return ps.reconstruct(current), nil
		}
		if currentData.state == NODE_CLOSED {
			continue
		}
		if err := ps.expand(ctx); err != nil {
			return nil, err
		}
		currentData.state = NODE_CLOSED
		for _, neighbour := range ps.net.AdjacentNodes(current) {
			sd := ps.data(neighbour)
			gTemp := currentData.g + Distance(current, neighbour)
			if sd.state != NODE_UNTESTED && gTemp >= sd.g {
				continue
			}
			if sd.state == NODE_UNTESTED {
				sd.h = Distance(neighbour, ps.end)
			}
			sd.g = gTemp
			sd.parent = current
			sd.state = NODE_OPEN
			heap.Push(queue, &starItem{node: neighbour, g: sd.g, priority: sd.f()})
		}
	}
	return []*Node{}, nil
}

// contracted answers query with contraction hierarchies of the network
func (ps *PathSearch) contracted() ([]*Node, error) {
	cost, vertices, err := ps.net.contractedPath(int64(ps.start.ID), int64(ps.end.ID))
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare contraction hierarchies")
	}
	if cost < 0 || len(vertices) == 0 {
		return []*Node{}, nil
	}
	path := make([]*Node, 0, len(vertices))
	for _, vertex := range vertices {
		node, err := ps.net.Lookup(osm.NodeID(vertex))
		if err != nil {
			return nil, errors.Wrap(err, "Contraction hierarchies returned unknown vertex")
		}
		path = append(path, node)
	}
	ps.expansions = len(path)
	return path, nil
}

// reconstruct follows parents from reached node back to the start
func (ps *PathSearch) reconstruct(reached *Node) []*Node {
	path := []*Node{}
	for node := reached; node != nil; node = ps.scratch[node.ID].parent {
		path = append(path, node)
		if node.ID == ps.start.ID {
			break
		}
	}
	slices.Reverse(path)
	return path
}

type starItem struct {
	node     *Node
	g        float64
	priority float64
}

type starQueue []*starItem

func (pq starQueue) Len() int           { return len(pq) }
func (pq starQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq starQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *starQueue) Push(x interface{}) {
	item := x.(*starItem)
	*pq = append(*pq, item)
}

func (pq *starQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
