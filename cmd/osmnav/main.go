package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/LdDl/osmnav"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

var (
	configFile    = flag.String("config", "", "Path to YAML configuration file. Flags provided explicitly override its values")
	osmFileName   = flag.String("file", "my_graph.osm.pbf", "Filename of OSM extract (*.osm, *.xml or *.osm.pbf)")
	tagStr        = flag.String("tags", strings.Join(osmnav.DefaultHighwayTags, ","), "Set of accepted `highway` values (separated by commas)")
	fromStr       = flag.String("from", "", "Starting point as 'lat,lon'")
	toStr         = flag.String("to", "", "Destination point as 'lat,lon'")
	strategyStr   = flag.String("strategy", "astar", "Search strategy. Expected values: astar / depth_first / contraction")
	maxExpansions = flag.Int("max-expansions", 0, "Maximum number of expanded nodes per search (0 = unlimited)")
	timeout       = flag.Duration("timeout", 10*time.Second, "Deadline for single search")
	out           = flag.String("out", "", "Filename for route geometry. Empty value means stdout")
	geomFormat    = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson / csv")
	serve         = flag.Bool("serve", false, "Run HTTP API instead of single query")
	listen        = flag.String("listen", ":8080", "Address for HTTP API")
	logLevel      = flag.String("log-level", "info", "Log level. Expected values: debug / info / warn / error")
)

func main() {
	flag.Parse()

	config, err := prepareConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	slog.SetDefault(logger)

	searchOptions, err := config.searchOptions()
	if err != nil {
		logger.Error("Bad search options", "error", err)
		os.Exit(1)
	}

	parser := osmnav.NewParser(
		config.OSM,
		osmnav.WithTags(config.Tags),
		osmnav.WithVerbose(true),
		osmnav.WithLogger(logger),
	)
	logger.Debug(parser.String())
	st := time.Now()
	net, err := parser.ReadOSM()
	if err != nil {
		logger.Error("Can't load road network", "error", err)
		os.Exit(1)
	}
	logger.Info("Road network loaded", "elapsed", time.Since(st))

	nav := osmnav.NewNavigator(
		net,
		osmnav.WithSearchOptions(searchOptions...),
		osmnav.WithNavigatorVerbose(true),
		osmnav.WithNavigatorLogger(logger),
	)

	if *serve {
		router := mux.NewRouter()
		NewRouteHandler(nav, config.Timeout, logger).RegisterRoutes(router)
		logger.Info("Server running", "listen", config.Listen)
		if err := http.ListenAndServe(config.Listen, router); err != nil {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runQuery(nav, config); err != nil {
		logger.Error("Query failed", "error", err)
		os.Exit(1)
	}
}

// prepareConfig merges defaults, configuration file and explicitly set flags
func prepareConfig() (Config, error) {
	config := defaultConfig()
	if *configFile != "" {
		var err error
		config, err = ReadConfig(*configFile)
		if err != nil {
			return config, err
		}
	}
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	if explicit["file"] || *configFile == "" {
		config.OSM = *osmFileName
	}
	if explicit["tags"] {
		config.Tags = strings.Split(*tagStr, ",")
	}
	if explicit["strategy"] {
		config.Strategy = *strategyStr
	}
	if explicit["max-expansions"] {
		config.MaxExpansions = *maxExpansions
	}
	if explicit["timeout"] {
		config.Timeout = *timeout
	}
	if explicit["listen"] {
		config.Listen = *listen
	}
	if explicit["geomf"] {
		config.OutputFormat = *geomFormat
	}
	if explicit["log-level"] {
		config.LogLevel = *logLevel
	}
	return config, nil
}

func runQuery(nav *osmnav.Navigator, config Config) error {
	from, err := parseLatLon(*fromStr)
	if err != nil {
		return errors.Wrap(err, "Bad -from")
	}
	to, err := parseLatLon(*toStr)
	if err != nil {
		return errors.Wrap(err, "Bad -to")
	}
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()
	route, err := nav.Navigate(ctx, from, to)
	if err != nil {
		return err
	}
	if !route.Reachable() {
		fmt.Println("Destination is unreachable")
		return nil
	}

	fmt.Printf("Route from '%s' to '%s': %s (about %v)\n", route.StartingRoad, route.DestinationRoad, osmnav.FormatDistance(route.TotalDistance), route.EstimatedDuration().Round(time.Second))
	for i, step := range route.Steps {
		fmt.Printf("\t%d. %s\n", i+1, step.Instruction())
	}

	switch strings.ToLower(config.OutputFormat) {
	case "csv":
		if *out == "" {
			return route.WriteCSV(os.Stdout)
		}
		return route.ExportToCSV(*out)
	case "geojson":
		b, err := route.GeoJSON()
		if err != nil {
			return err
		}
		return writeOutput(b)
	default:
		return writeOutput([]byte(route.WKT() + "\n"))
	}
}

func writeOutput(b []byte) error {
	if *out == "" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return errors.Wrap(os.WriteFile(*out, b, 0644), "Can't write output")
}
