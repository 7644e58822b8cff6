package osmnav

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

func TestComposeRouteSquare(t *testing.T) {
	net := squareRing(t)
	start, end := mustLookup(t, net, 1), mustLookup(t, net, 3)
	path, err := NewPathSearch(net, start, end).FindPath(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	route, err := ComposeRoute(net, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(route.Steps) != 2 {
		t.Fatalf("Route must contain 2 steps, but got %d", len(route.Steps))
	}
	if turn := route.Steps[0].Turn; turn != TURN_LEFT && turn != TURN_RIGHT {
		t.Errorf("First step must be a turn, but got %s", turn)
	}
	if route.Steps[1].Turn != TURN_DESTINATION_REACHED {
		t.Errorf("Last step must be %s, but got %s", TURN_DESTINATION_REACHED, route.Steps[1].Turn)
	}
	if math.Abs(route.TotalDistance-2000) > 0.01 {
		t.Errorf("Total distance must be about 2000 meters, but got %f", route.TotalDistance)
	}
	if route.TotalDistance != roundTo(pathLength(path), 2) {
		t.Errorf("Total distance must be rounded sum of legs %f, but got %f", roundTo(pathLength(path), 2), route.TotalDistance)
	}
	// A* goes through north-west corner: north along West Street, then right onto North Street
	if path[1].ID == 4 {
		if route.StartingRoad != "West Street" || route.DestinationRoad != "North Street" {
			t.Errorf("Wrong roads: '%s' -> '%s'", route.StartingRoad, route.DestinationRoad)
		}
		if route.Steps[0].Turn != TURN_RIGHT {
			t.Errorf("Turn from West Street onto North Street must be %s, but got %s", TURN_RIGHT, route.Steps[0].Turn)
		}
		if route.Steps[0].WayName != "North Street" {
			t.Errorf("First step must lead onto North Street, but got '%s'", route.Steps[0].WayName)
		}
	}
	if math.Abs(route.Steps[0].Distance-1000) > 0.01 {
		t.Errorf("First step distance must be about 1000 meters, but got %f", route.Steps[0].Distance)
	}
	if route.Steps[0].DistanceLabel != FormatDistance(route.Steps[0].Distance) {
		t.Errorf("Distance label must be '%s', but got '%s'", FormatDistance(route.Steps[0].Distance), route.Steps[0].DistanceLabel)
	}
}

func TestComposeRouteCollinear(t *testing.T) {
	net := collinearLine(t)
	path := make([]*Node, 5)
	for i := range path {
		path[i] = mustLookup(t, net, osm.NodeID(100+i))
	}
	route, err := ComposeRoute(net, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(route.Steps) != 4 {
		t.Fatalf("Route must contain 4 steps, but got %d", len(route.Steps))
	}
	for i, step := range route.Steps[:3] {
		if step.Turn != TURN_STRAIGHT {
			t.Errorf("Step #%d must be %s, but got %s", i, TURN_STRAIGHT, step.Turn)
		}
		if step.DistanceLabel != "100m" {
			t.Errorf("Step #%d distance must be '100m', but got '%s'", i, step.DistanceLabel)
		}
	}
	if route.Steps[3].Turn != TURN_DESTINATION_REACHED {
		t.Errorf("Last step must be %s, but got %s", TURN_DESTINATION_REACHED, route.Steps[3].Turn)
	}
	if math.Abs(route.TotalDistance-400) > 0.01 {
		t.Errorf("Total distance must be 400 meters, but got %f", route.TotalDistance)
	}
	if route.StartingRoad != "Long Road" || route.DestinationRoad != "Long Road" {
		t.Errorf("Wrong roads: '%s' -> '%s'", route.StartingRoad, route.DestinationRoad)
	}
	// 400 meters of primary road at 80 km/h
	expected := time.Duration(0.4 / 80 * float64(time.Hour))
	if d := route.EstimatedDuration(); math.Abs(float64(d-expected)) > float64(time.Millisecond) {
		t.Errorf("Estimated duration must be %v, but got %v", expected, d)
	}
	if len(route.Points()) != 5 {
		t.Errorf("Route geometry must contain 5 points, but got %d", len(route.Points()))
	}
}

func TestComposeRouteTwoNodes(t *testing.T) {
	net := collinearLine(t)
	route, err := ComposeRoute(net, []*Node{mustLookup(t, net, 100), mustLookup(t, net, 101)})
	if err != nil {
		t.Fatal(err)
	}
	if len(route.Steps) != 1 || route.Steps[0].Turn != TURN_DESTINATION_REACHED {
		t.Errorf("Two nodes route must contain single destination step, but got %+v", route.Steps)
	}
}

func TestComposeRouteEmpty(t *testing.T) {
	net := squareRing(t)
	route, err := ComposeRoute(net, []*Node{})
	if err != nil {
		t.Fatal(err)
	}
	if route.Reachable() {
		t.Error("Empty route must be unreachable")
	}
	if len(route.Steps) != 0 || route.TotalDistance != 0 {
		t.Errorf("Empty route must have no steps and zero distance, but got %d steps and %f", len(route.Steps), route.TotalDistance)
	}
}

func TestComposeRouteBrokenPath(t *testing.T) {
	net := squareRing(t)
	_, err := ComposeRoute(net, []*Node{mustLookup(t, net, 1), mustLookup(t, net, 3)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Non-adjacent nodes must fail with ErrNotFound, but got %v", err)
	}
}

func TestClassifyTurn(t *testing.T) {
	cases := []struct {
		prev, next float64
		turn       TurnType
	}{
		{90, 90, TURN_STRAIGHT},
		{90, 100, TURN_STRAIGHT},
		{90, 0, TURN_LEFT},
		{0, 90, TURN_RIGHT},
		{350, 80, TURN_RIGHT},
		{10, 280, TURN_LEFT},
	}
	for _, c := range cases {
		if turn := classifyTurn(c.prev, c.next); turn != c.turn {
			t.Errorf("Turn from %f to %f must be %s, but got %s", c.prev, c.next, c.turn, turn)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	cases := map[float64]string{
		0:       "0m",
		12.49:   "12m",
		999.4:   "999m",
		1000:    "1.0km",
		1540.55: "1.5km",
		12345:   "12.3km",
	}
	for meters, label := range cases {
		if formatted := FormatDistance(meters); formatted != label {
			t.Errorf("Distance %f must be formatted as '%s', but got '%s'", meters, label, formatted)
		}
	}
}

func TestStepInstruction(t *testing.T) {
	step := Step{DistanceLabel: "500m", Turn: TURN_LEFT, WayName: "Main Street"}
	if text := step.Instruction(); text != "In 500m turn left onto Main Street" {
		t.Errorf("Wrong instruction: '%s'", text)
	}
	step = Step{DistanceLabel: "1.2km", Turn: TURN_DESTINATION_REACHED}
	if text := step.Instruction(); text != "In 1.2km arrive at destination on unnamed road" {
		t.Errorf("Wrong instruction: '%s'", text)
	}
}

func TestRouteExports(t *testing.T) {
	net := collinearLine(t)
	path, err := NewPathSearch(net, mustLookup(t, net, 100), mustLookup(t, net, 102)).FindPath(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	route, err := ComposeRoute(net, path)
	if err != nil {
		t.Fatal(err)
	}

	if wktStr := route.WKT(); !strings.HasPrefix(wktStr, "LINESTRING(0 0,") {
		t.Errorf("WKT must be LINESTRING starting at origin, but got '%s'", wktStr)
	}

	b, err := route.GeoJSON()
	if err != nil {
		t.Fatal(err)
	}
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		t.Fatal(err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1+len(route.Steps) {
		t.Fatalf("GeoJSON must contain polyline and %d points, but got %d features", len(route.Steps), len(fc.Features))
	}
	if fc.Features[0].Geometry.Type != "LineString" {
		t.Errorf("First feature must be LineString, but got %s", fc.Features[0].Geometry.Type)
	}
	if fc.Features[len(fc.Features)-1].Properties["turn"] != TURN_DESTINATION_REACHED.String() {
		t.Errorf("Last feature must be destination, but got %v", fc.Features[len(fc.Features)-1].Properties["turn"])
	}

	buf := &bytes.Buffer{}
	if err := route.WriteCSV(buf); err != nil {
		t.Fatal(err)
	}
	reader := csv.NewReader(buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1+len(route.Steps) {
		t.Errorf("CSV must contain header and %d rows, but got %d", len(route.Steps), len(records))
	}

	empty := &Route{}
	if wktStr := empty.WKT(); wktStr != "LINESTRING EMPTY" {
		t.Errorf("Empty route WKT must be 'LINESTRING EMPTY', but got '%s'", wktStr)
	}
}
