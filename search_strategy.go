package osmnav

import (
	"strings"

	"github.com/pkg/errors"
)

type SearchStrategy uint16

const (
	// STRATEGY_ASTAR is priority-queue A* with reopening. Returns shortest path
	STRATEGY_ASTAR = SearchStrategy(iota + 1)
	// STRATEGY_DEPTH_FIRST explores F-ordered siblings depth first and returns the first path found. Not necessary the shortest one
	STRATEGY_DEPTH_FIRST
	// STRATEGY_CONTRACTION queries contraction hierarchies of the network. Returns shortest path
	STRATEGY_CONTRACTION
)

func (iotaIdx SearchStrategy) String() string {
	return [...]string{"astar", "depth_first", "contraction"}[iotaIdx-1]
}

// ParseSearchStrategy returns strategy by its name
func ParseSearchStrategy(str string) (SearchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "astar", "a*", "":
		return STRATEGY_ASTAR, nil
	case "depth_first", "dfs":
		return STRATEGY_DEPTH_FIRST, nil
	case "contraction", "ch":
		return STRATEGY_CONTRACTION, nil
	default:
		return 0, errors.Errorf("Unknown search strategy '%s'", str)
	}
}
