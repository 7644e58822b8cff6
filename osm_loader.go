package osmnav

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type OSMFormat uint16

const (
	FORMAT_XML = OSMFormat(iota + 1)
	FORMAT_PBF
)

func (iotaIdx OSMFormat) String() string {
	return [...]string{"xml", "pbf"}[iotaIdx-1]
}

// FormatFromFilename guesses format by file extension
func FormatFromFilename(filename string) (OSMFormat, error) {
	if strings.HasSuffix(filename, ".osm.pbf") {
		return FORMAT_PBF, nil
	}
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return FORMAT_XML, nil
	case ".pbf":
		return FORMAT_PBF, nil
	default:
		return 0, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

func newScanner(format OSMFormat, r io.Reader) OSMScanner {
	if format == FORMAT_PBF {
		return osmpbf.New(context.Background(), r, 4)
	}
	return osmxml.New(context.Background(), r)
}

// ReadOSM opens file given to NewParser and builds road network from it
func (parser *Parser) ReadOSM() (*RoadNetwork, error) {
	format, err := FormatFromFilename(parser.filename)
	if err != nil {
		return nil, err
	}
	if parser.verbose {
		parser.logger.Info("Opening file", "filename", parser.filename)
	}
	file, err := os.Open(parser.filename)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()
	return parser.ReadOSMFrom(file, format)
}

// ReadOSMFrom builds road network from given stream. Stream is scanned twice: for ways and then for nodes
func (parser *Parser) ReadOSMFrom(rs io.ReadSeeker, format OSMFormat) (*RoadNetwork, error) {
	ways, nodesSeen, err := parser.scanWays(rs, format)
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan ways")
	}

	// Seek file to start
	_, err = rs.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	nodes, err := parser.scanNodes(rs, format, nodesSeen)
	if err != nil {
		return nil, errors.Wrap(err, "Can't scan nodes")
	}

	st := time.Now()
	net, err := Build(nodes, ways)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build road network")
	}
	if parser.verbose {
		parser.logger.Info("Road network is built",
			"elapsed", time.Since(st),
			"nodes", len(net.Nodes()),
			"ways", len(net.Ways()),
			"intersections", len(net.Intersections()),
		)
	}
	return net, nil
}

func (parser *Parser) scanWays(r io.Reader, format OSMFormat) ([]WayData, map[osm.NodeID]struct{}, error) {
	st := time.Now()
	ways := []WayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	skipped := 0

	scannerWays := newScanner(format, r)
	defer scannerWays.Close()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		highway := way.Tags.Find("highway")
		if !parser.checkTag(highway) {
			continue
		}
		if len(way.Nodes) < 2 {
			skipped++
			if parser.verbose {
				parser.logger.Warn("Way with less than 2 nodes met", "way_id", way.ID, "nodes", len(way.Nodes))
			}
			continue
		}
		name := way.Tags.Find("name")
		if name == "" {
			name = way.Tags.Find("ref")
		}
		if name == "" && !parser.keepUnnamed {
			skipped++
			continue
		}
		preparedWay := WayData{
			ID:      way.ID,
			Name:    name,
			Highway: GetHighwayType(highway),
			Nodes:   make([]osm.NodeID, 0, len(way.Nodes)),
		}
		for _, node := range way.Nodes {
			nodesSeen[node.ID] = struct{}{}
			preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
		}
		ways = append(ways, preparedWay)
	}
	if err := scannerWays.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "Scanner error on Ways")
	}
	if parser.verbose {
		parser.logger.Info("Ways processed", "elapsed", time.Since(st), "ways", len(ways), "skipped", skipped)
	}
	return ways, nodesSeen, nil
}

func (parser *Parser) scanNodes(r io.Reader, format OSMFormat, nodesSeen map[osm.NodeID]struct{}) ([]NodeData, error) {
	st := time.Now()
	nodes := make([]NodeData, 0, len(nodesSeen))

	scannerNodes := newScanner(format, r)
	defer scannerNodes.Close()
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			delete(nodesSeen, node.ID)
			nodes = append(nodes, NodeData{
				ID:  node.ID,
				Lat: node.Lat,
				Lon: node.Lon,
			})
		}
	}
	if err := scannerNodes.Err(); err != nil {
		return nil, errors.Wrap(err, "Scanner error on Nodes")
	}
	if parser.verbose {
		parser.logger.Info("Nodes processed", "elapsed", time.Since(st), "nodes", len(nodes), "missing", len(nodesSeen))
	}
	return nodes, nil
}
