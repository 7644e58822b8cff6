package osmnav

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// Navigator snaps coordinates onto road network, searches path and composes route
type Navigator struct {
	net           *RoadNetwork
	searchOptions []SearchOption
	verbose       bool
	logger        *slog.Logger
}

func NewNavigator(net *RoadNetwork, options ...func(*Navigator)) *Navigator {
	nav := &Navigator{
		net:    net,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(nav)
	}
	return nav
}

// WithSearchOptions sets options for every PathSearch created by navigator
func WithSearchOptions(searchOptions ...SearchOption) func(*Navigator) {
	return func(nav *Navigator) {
		nav.searchOptions = append(nav.searchOptions, searchOptions...)
	}
}

func WithNavigatorVerbose(verbose bool) func(*Navigator) {
	return func(nav *Navigator) {
		nav.verbose = verbose
	}
}

func WithNavigatorLogger(logger *slog.Logger) func(*Navigator) {
	return func(nav *Navigator) {
		if logger != nil {
			nav.logger = logger
		}
	}
}

// Network returns underlying road network
func (nav *Navigator) Network() *RoadNetwork {
	return nav.net
}

// Navigate returns route between intersections closest to given points
//
// Unreachable destination is not an error: returned route has no nodes
//
func (nav *Navigator) Navigate(ctx context.Context, from, to GeoPoint) (*Route, error) {
	start, err := nav.net.NearestIntersection(from.Lat, from.Lon)
	if err != nil {
		return nil, errors.Wrap(err, "Can't snap starting point")
	}
	end, err := nav.net.NearestIntersection(to.Lat, to.Lon)
	if err != nil {
		return nil, errors.Wrap(err, "Can't snap destination point")
	}
	st := time.Now()
	search := NewPathSearch(nav.net, start, end, nav.searchOptions...)
	path, err := search.FindPath(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't find path between '%d' and '%d'", start.ID, end.ID)
	}
	if nav.verbose {
		nav.logger.Info("Path search done",
			"start", start.ID,
			"end", end.ID,
			"nodes", len(path),
			"expansions", search.Expansions(),
			"elapsed", time.Since(st),
		)
	}
	route, err := ComposeRoute(nav.net, path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't compose route")
	}
	return route, nil
}
