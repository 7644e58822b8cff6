package osmnav

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

type Parser struct {
	filename    string
	tags        []string
	keepUnnamed bool
	verbose     bool
	logger      *slog.Logger
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Network parser parameters:
	filename: '%s'
	tags: '%s'
	keep unnamed?: %t
	verbose?: %t
	`,
		parser.filename,
		strings.Join(parser.tags, ","),
		parser.keepUnnamed,
		parser.verbose,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename:    fileName,
		tags:        DefaultHighwayTags,
		keepUnnamed: true,
		verbose:     false,
		logger:      slog.Default(),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

// WithTags sets accepted values of `highway` tag
func WithTags(tags []string) func(*Parser) {
	return func(parser *Parser) {
		if len(tags) != 0 {
			parser.tags = tags
		}
	}
}

// WithKeepUnnamed allows to skip ways without `name` and `ref` tags
func WithKeepUnnamed(keepUnnamed bool) func(*Parser) {
	return func(parser *Parser) {
		parser.keepUnnamed = keepUnnamed
	}
}

func WithVerbose(verbose bool) func(*Parser) {
	return func(parser *Parser) {
		parser.verbose = verbose
	}
}

func WithLogger(logger *slog.Logger) func(*Parser) {
	return func(parser *Parser) {
		if logger != nil {
			parser.logger = logger
		}
	}
}

// checkTag checks if incoming `highway` value is accepted
func (parser *Parser) checkTag(tag string) bool {
	for i := range parser.tags {
		if parser.tags[i] == tag {
			return true
		}
	}
	return false
}
