package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LdDl/osmnav"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Config is content of optional YAML configuration file. Command line flags override it
type Config struct {
	OSM           string        `yaml:"osm"`
	Tags          []string      `yaml:"tags"`
	Strategy      string        `yaml:"strategy"`
	MaxExpansions int           `yaml:"max-expansions"`
	Timeout       time.Duration `yaml:"timeout"`
	Listen        string        `yaml:"listen"`
	OutputFormat  string        `yaml:"output-format"`
	LogLevel      string        `yaml:"log-level"`
}

func defaultConfig() Config {
	return Config{
		OSM:          "my_graph.osm.pbf",
		Tags:         osmnav.DefaultHighwayTags,
		Strategy:     osmnav.STRATEGY_ASTAR.String(),
		Timeout:      10 * time.Second,
		Listen:       ":8080",
		OutputFormat: "wkt",
		LogLevel:     "info",
	}
}

// ReadConfig reads YAML file on top of defaults
func ReadConfig(file string) (Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, errors.Wrap(err, "Can't read config file")
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return config, errors.Wrap(err, "Can't parse config file")
	}
	return config, nil
}

func (config Config) searchOptions() ([]osmnav.SearchOption, error) {
	strategy, err := osmnav.ParseSearchStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}
	return []osmnav.SearchOption{
		osmnav.WithStrategy(strategy),
		osmnav.WithMaxExpansions(config.MaxExpansions),
	}, nil
}

func parseLogLevel(str string) slog.Level {
	switch strings.ToLower(str) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseLatLon parses "lat,lon" pair
func parseLatLon(str string) (osmnav.GeoPoint, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return osmnav.GeoPoint{}, errors.Errorf("Expected 'lat,lon', got '%s'", str)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return osmnav.GeoPoint{}, errors.Wrapf(err, "Bad latitude in '%s'", str)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return osmnav.GeoPoint{}, errors.Wrapf(err, "Bad longitude in '%s'", str)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return osmnav.GeoPoint{}, errors.Errorf("Coordinates out of range: '%s'", str)
	}
	return osmnav.GeoPoint{Lat: lat, Lon: lon}, nil
}
