package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// StructuredTOMLConfig mirrors [StructuredJSONConfig] for TOML files.
// Durations are written as strings ("30s", "1m").
type StructuredTOMLConfig struct {
	Collection struct {
		Host      string `toml:"host"`
		Path      string `toml:"path"`
		Type      string `toml:"type"`
		Realtime  bool   `toml:"realtime"`
		Inclusive bool   `toml:"inclusive"`
	} `toml:"collection"`

	Adapter struct {
		RequestTimeout   time.Duration `toml:"request_timeout"`
		HandshakeTimeout time.Duration `toml:"handshake_timeout"`
	} `toml:"adapter"`

	Query struct {
		Filter     string   `toml:"filter"`
		Fields     string   `toml:"fields"`
		Sort       []string `toml:"sort"`
		PageOffset int      `toml:"page_offset"`
		PageLimit  int      `toml:"page_limit"`
	} `toml:"query"`

	Workers struct {
		RefreshInterval time.Duration `toml:"refresh_interval"`
	} `toml:"workers"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func parseTOML(tomlFilePath string) (*StructuredConfig, error) {
	var tomlCfg StructuredTOMLConfig
	meta, err := toml.DecodeFile(tomlFilePath, &tomlCfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding toml configs: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("error decoding toml configs: unknown key %q", undecoded[0].String())
	}

	return &StructuredConfig{
		Collection: Collection{
			Host:      tomlCfg.Collection.Host,
			Path:      tomlCfg.Collection.Path,
			Type:      tomlCfg.Collection.Type,
			Realtime:  tomlCfg.Collection.Realtime,
			Inclusive: tomlCfg.Collection.Inclusive,
		},
		Adapter: Adapter{
			RequestTimeout:   tomlCfg.Adapter.RequestTimeout,
			HandshakeTimeout: tomlCfg.Adapter.HandshakeTimeout,
		},
		Query: Query{
			Filter:     tomlCfg.Query.Filter,
			Fields:     tomlCfg.Query.Fields,
			Sort:       tomlCfg.Query.Sort,
			PageOffset: tomlCfg.Query.PageOffset,
			PageLimit:  tomlCfg.Query.PageLimit,
		},
		Workers: Workers{
			RefreshInterval: tomlCfg.Workers.RefreshInterval,
		},
		Log: Log{Level: tomlCfg.Log.Level},
	}, nil
}
