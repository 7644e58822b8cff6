package osmnav

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// Small T-junction with a building which must be ignored:
//
//	1 --- 2 --- 3   (Main Street)
//	      |
//	      4         (Side Street, highway=residential without name but with ref)
const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="osmnav-test">
 <node id="1" lat="52.0000" lon="5.0000" version="1"/>
 <node id="2" lat="52.0000" lon="5.0010" version="1"/>
 <node id="3" lat="52.0000" lon="5.0020" version="1"/>
 <node id="4" lat="51.9990" lon="5.0010" version="1"/>
 <node id="5" lat="52.0005" lon="5.0005" version="1"/>
 <node id="6" lat="52.0006" lon="5.0006" version="1"/>
 <node id="7" lat="52.0007" lon="5.0005" version="1"/>
 <way id="100" version="1">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="highway" v="secondary"/>
  <tag k="name" v="Main Street"/>
 </way>
 <way id="101" version="1">
  <nd ref="2"/>
  <nd ref="4"/>
  <tag k="highway" v="residential"/>
  <tag k="ref" v="N201"/>
 </way>
 <way id="102" version="1">
  <nd ref="5"/>
  <nd ref="6"/>
  <nd ref="7"/>
  <nd ref="5"/>
  <tag k="building" v="yes"/>
 </way>
 <way id="103" version="1">
  <nd ref="5"/>
  <tag k="highway" v="residential"/>
 </way>
</osm>`

func TestParserReadOSMFrom(t *testing.T) {
	parser := NewParser("sample.osm", WithVerbose(false))
	t.Log(parser)

	net, err := parser.ReadOSMFrom(strings.NewReader(sampleOSM), FORMAT_XML)
	if err != nil {
		t.Fatal(err)
	}
	if len(net.Ways()) != 2 {
		t.Fatalf("Number of ways must be 2, but got %d", len(net.Ways()))
	}
	if len(net.Nodes()) != 4 {
		t.Errorf("Number of nodes must be 4 (building and degenerate way must be ignored), but got %d", len(net.Nodes()))
	}
	if len(net.Intersections()) != 1 || net.Intersections()[0].ID != 2 {
		t.Errorf("Node 2 must be the only intersection, but got %v", nodeIDs(net.Intersections()))
	}
	main, err := net.Way(100)
	if err != nil {
		t.Fatal(err)
	}
	if main.Name != "Main Street" || main.Highway != HIGHWAY_SECONDARY {
		t.Errorf("Wrong main way: '%s' (%s)", main.Name, main.Highway)
	}
	side, err := net.Way(101)
	if err != nil {
		t.Fatal(err)
	}
	if side.Name != "N201" {
		t.Errorf("Way without name must fallback to ref, but got '%s'", side.Name)
	}

	path, err := NewPathSearch(net, mustLookup(t, net, 1), mustLookup(t, net, 4)).FindPath(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	route, err := ComposeRoute(net, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(route.Steps) != 2 || route.Steps[0].Turn != TURN_RIGHT || route.Steps[0].WayName != "N201" {
		t.Errorf("Route must turn right onto N201 and arrive, but got %+v", route.Steps)
	}
}

func TestParserTagsFilter(t *testing.T) {
	parser := NewParser("sample.osm", WithTags([]string{"secondary"}))
	net, err := parser.ReadOSMFrom(strings.NewReader(sampleOSM), FORMAT_XML)
	if err != nil {
		t.Fatal(err)
	}
	if len(net.Ways()) != 1 || len(net.Nodes()) != 3 {
		t.Errorf("Only Main Street must be loaded, but got %d ways and %d nodes", len(net.Ways()), len(net.Nodes()))
	}
	if len(net.Intersections()) != 0 {
		t.Errorf("There must be no intersections, but got %v", nodeIDs(net.Intersections()))
	}
}

func TestParserKeepUnnamed(t *testing.T) {
	const unnamed = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="0" lon="0"/>
 <node id="2" lat="0" lon="0.001"/>
 <way id="1"><nd ref="1"/><nd ref="2"/><tag k="highway" v="service"/></way>
</osm>`
	net, err := NewParser("unnamed.osm", WithKeepUnnamed(false)).ReadOSMFrom(strings.NewReader(unnamed), FORMAT_XML)
	if err != nil {
		t.Fatal(err)
	}
	if len(net.Ways()) != 0 {
		t.Errorf("Unnamed way must be skipped, but got %d ways", len(net.Ways()))
	}
}

func TestParserMissingNode(t *testing.T) {
	const broken = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="0" lon="0"/>
 <way id="1"><nd ref="1"/><nd ref="2"/><tag k="highway" v="primary"/></way>
</osm>`
	_, err := NewParser("broken.osm").ReadOSMFrom(strings.NewReader(broken), FORMAT_XML)
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("Missing node must fail with ErrDataIntegrity, but got %v", err)
	}
}

func TestFormatFromFilename(t *testing.T) {
	cases := map[string]OSMFormat{
		"map.osm":     FORMAT_XML,
		"map.xml":     FORMAT_XML,
		"map.osm.pbf": FORMAT_PBF,
		"map.pbf":     FORMAT_PBF,
	}
	for filename, format := range cases {
		got, err := FormatFromFilename(filename)
		if err != nil {
			t.Errorf("Unexpected error for '%s': %v", filename, err)
			continue
		}
		if got != format {
			t.Errorf("Format of '%s' must be %s, but got %s", filename, format, got)
		}
	}
	if _, err := FormatFromFilename("map.csv"); err == nil {
		t.Error("Unknown extension must produce an error")
	}
}
