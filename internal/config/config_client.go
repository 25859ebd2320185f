package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/live-collection/models"
)

// ClientCollection identifies the mirrored collection and its live mode.
type ClientCollection struct {
	Host      string
	Path      string
	Type      string
	Realtime  bool
	Inclusive bool
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// RequestTimeout is the default timeout for outbound HTTP requests.
	RequestTimeout time.Duration
	// HandshakeTimeout bounds the websocket opening handshake.
	HandshakeTimeout time.Duration
}

// ClientQuery holds the fetch options used by the client.
type ClientQuery struct {
	Filter     string
	Fields     string
	Sort       []string
	PageOffset int
	PageLimit  int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the collection is re-fetched.
	// Zero disables periodic refresh.
	RefreshInterval time.Duration
}

// ClientLog contains logger settings.
type ClientLog struct {
	Level string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Collection ClientCollection
	Adapter    ClientAdapter
	Query      ClientQuery
	Workers    ClientWorkers
	Log        ClientLog
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Collection: ClientCollection{
			Host:      cfg.Collection.Host,
			Path:      cfg.Collection.Path,
			Type:      cfg.Collection.Type,
			Realtime:  cfg.Collection.Realtime,
			Inclusive: cfg.Collection.Inclusive,
		},
		Adapter: ClientAdapter{
			RequestTimeout:   cfg.Adapter.RequestTimeout,
			HandshakeTimeout: cfg.Adapter.HandshakeTimeout,
		},
		Query: ClientQuery{
			Filter:     cfg.Query.Filter,
			Fields:     cfg.Query.Fields,
			Sort:       cfg.Query.Sort,
			PageOffset: cfg.Query.PageOffset,
			PageLimit:  cfg.Query.PageLimit,
		},
		Workers: ClientWorkers{RefreshInterval: cfg.Workers.RefreshInterval},
		Log:     ClientLog{Level: cfg.Log.Level},
	}
}

// FindOptions converts the query settings into [models.FindOptions]. The raw
// JSON filter and projection are decoded into generic values so they are
// re-encoded verbatim on every fetch.
func (q ClientQuery) FindOptions() (models.FindOptions, error) {
	opts := models.FindOptions{Sort: q.Sort}

	if q.Filter != "" {
		var filter any
		if err := json.Unmarshal([]byte(q.Filter), &filter); err != nil {
			return models.FindOptions{}, fmt.Errorf("%w: filter: %w", ErrInvalidQueryConfigs, err)
		}
		opts.Query = filter
	}

	if q.Fields != "" {
		var fields any
		if err := json.Unmarshal([]byte(q.Fields), &fields); err != nil {
			return models.FindOptions{}, fmt.Errorf("%w: fields: %w", ErrInvalidQueryConfigs, err)
		}
		opts.Fields = fields
	}

	if q.PageOffset != 0 || q.PageLimit != 0 {
		opts.Page = &models.Page{Offset: q.PageOffset, Limit: q.PageLimit}
	}

	return opts, nil
}
