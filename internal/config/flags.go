package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// FieldList holds an ordered list of field names given as a comma separated
// flag value. It implements the flag.Value interface.
type FieldList []string

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-host server base address (e.g. http://localhost:8080)
//	-path API path prefix (e.g. api/v1)
//	-type resource type (e.g. widgets)
//	-realtime open the websocket live channel
//	-inclusive pull unseen ids announced by create events
//	-request-timeout HTTP request timeout (e.g. "10s")
//	-handshake-timeout websocket handshake timeout (e.g. "5s")
//	-filter raw JSON filter
//	-fields raw JSON projection
//	-sort comma separated sort fields
//	-page-offset first row of the fetched window
//	-page-limit size of the fetched window
//	-refresh-interval period of the re-fetch worker (e.g. "1m")
//	-log-level zerolog level name (e.g. "info")
//	-c/-config json file path with configs
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("live-collection", flag.ContinueOnError)

	var host, path, resourceType string
	var realtime, inclusive bool
	var requestTimeout, handshakeTimeout, refreshInterval time.Duration
	var filter, fields string
	var sort FieldList
	var pageOffset, pageLimit int
	var jsonConfigPath string
	var logLevel string

	fs.StringVar(&host, "host", "", "Server base address")
	fs.StringVar(&path, "path", "", "API path prefix")
	fs.StringVar(&resourceType, "type", "", "Resource type")
	fs.BoolVar(&realtime, "realtime", false, "Open the websocket live channel")
	fs.BoolVar(&inclusive, "inclusive", false, "Pull unseen ids announced by create events")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "HTTP request timeout (e.g., 10s)")
	fs.DurationVar(&handshakeTimeout, "handshake-timeout", 0, "Websocket handshake timeout (e.g., 5s)")
	fs.StringVar(&filter, "filter", "", "Raw JSON filter")
	fs.StringVar(&fields, "fields", "", "Raw JSON projection")
	fs.Var(&sort, "sort", "Comma separated sort fields")
	fs.IntVar(&pageOffset, "page-offset", 0, "First row of the fetched window")
	fs.IntVar(&pageLimit, "page-limit", 0, "Size of the fetched window")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Re-fetch period (e.g., 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Collection: Collection{
			Host:      host,
			Path:      path,
			Type:      resourceType,
			Realtime:  realtime,
			Inclusive: inclusive,
		},
		Adapter: Adapter{
			RequestTimeout:   requestTimeout,
			HandshakeTimeout: handshakeTimeout,
		},
		Query: Query{
			Filter:     filter,
			Fields:     fields,
			Sort:       sort,
			PageOffset: pageOffset,
			PageLimit:  pageLimit,
		},
		Workers:      Workers{RefreshInterval: refreshInterval},
		Log:          Log{Level: logLevel},
		FilePath: jsonConfigPath,
	}, nil
}

// String returns the list joined with commas.
func (l *FieldList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set splits s on commas and appends every non-empty, trimmed field. The
// flag may be repeated.
func (l *FieldList) Set(s string) error {
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		*l = append(*l, field)
	}
	return nil
}
