package osmnav

import (
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Step is single turn-by-turn instruction: travel Distance meters, then make Turn onto WayName
type Step struct {
	Distance      float64
	DistanceLabel string
	Turn          TurnType
	WayName       string
	// Node where maneuver happens
	Node *Node
}

// Instruction returns human readable text for the step
func (step Step) Instruction() string {
	switch step.Turn {
	case TURN_LEFT:
		return fmt.Sprintf("In %s turn left onto %s", step.DistanceLabel, step.roadName())
	case TURN_RIGHT:
		return fmt.Sprintf("In %s turn right onto %s", step.DistanceLabel, step.roadName())
	case TURN_DESTINATION_REACHED:
		return fmt.Sprintf("In %s arrive at destination on %s", step.DistanceLabel, step.roadName())
	default:
		return fmt.Sprintf("Continue straight for %s on %s", step.DistanceLabel, step.roadName())
	}
}

func (step Step) roadName() string {
	if step.WayName == "" {
		return "unnamed road"
	}
	return step.WayName
}

// Route is composed path with instructions
type Route struct {
	Nodes           []*Node
	Steps           []Step
	StartingRoad    string
	DestinationRoad string
	// Meters, rounded to 2 decimal places
	TotalDistance float64

	// legs[i] covers Nodes[i] -> Nodes[i+1]
	legs []*Way
}

// Reachable reports whether route contains any path
func (route *Route) Reachable() bool {
	return len(route.Nodes) > 0
}

// Points returns route geometry
func (route *Route) Points() orb.LineString {
	line := make(orb.LineString, len(route.Nodes))
	for i, node := range route.Nodes {
		line[i] = node.Point()
	}
	return line
}

// EstimatedDuration returns travel time using default speed of every traversed way category
func (route *Route) EstimatedDuration() time.Duration {
	hours := 0.0
	for i, way := range route.legs {
		meters := Distance(route.Nodes[i], route.Nodes[i+1])
		hours += meters / 1000.0 / way.Highway.DefaultSpeed()
	}
	return time.Duration(hours * float64(time.Hour))
}

// ComposeRoute converts path into turn-by-turn steps
//
// Consecutive nodes of the path must be adjacent in the network, otherwise wrapped ErrNotFound is returned
//
func ComposeRoute(net *RoadNetwork, path []*Node) (*Route, error) {
	route := &Route{
		Nodes: path,
		Steps: []Step{},
	}
	if len(path) < 2 {
		return route, nil
	}
	route.legs = make([]*Way, 0, len(path)-1)
	total := 0.0
	for i := 1; i < len(path); i++ {
		way, err := net.ConnectingWay(path[i-1], path[i])
		if err != nil {
			return nil, errors.Wrapf(err, "Can't compose leg %d", i-1)
		}
		route.legs = append(route.legs, way)
		total += Distance(path[i-1], path[i])
	}
	route.TotalDistance = roundTo(total, 2)
	route.StartingRoad = route.legs[0].DisplayName()
	route.DestinationRoad = route.legs[len(route.legs)-1].DisplayName()

	// Heading of the departure leg. Undefined when the first two nodes coincide
	prevBearing := Bearing(path[0], path[1])
	hasPrev := Distance(path[0], path[1]) > 0
	for i := 0; i+2 < len(path); i++ {
		bearing := Bearing(path[i+1], path[i+2])
		turn := TURN_STRAIGHT
		if hasPrev {
			turn = classifyTurn(prevBearing, bearing)
		}
		legDistance := roundTo(Distance(path[i], path[i+1]), 2)
		route.Steps = append(route.Steps, Step{
			Distance:      legDistance,
			DistanceLabel: FormatDistance(legDistance),
			Turn:          turn,
			WayName:       route.legs[i+1].DisplayName(),
			Node:          path[i+1],
		})
		if Distance(path[i+1], path[i+2]) > 0 {
			prevBearing = bearing
			hasPrev = true
		}
	}
	last := len(path) - 1
	lastDistance := roundTo(Distance(path[last-1], path[last]), 2)
	route.Steps = append(route.Steps, Step{
		Distance:      lastDistance,
		DistanceLabel: FormatDistance(lastDistance),
		Turn:          TURN_DESTINATION_REACHED,
		WayName:       route.DestinationRoad,
		Node:          path[last],
	})
	return route, nil
}

// FormatDistance returns whole meters below one kilometer and kilometers with single decimal otherwise
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int64(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000.0)
}
