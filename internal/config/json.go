package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Collection struct {
		Host      string `json:"host"`
		Path      string `json:"path"`
		Type      string `json:"type"`
		Realtime  bool   `json:"realtime"`
		Inclusive bool   `json:"inclusive"`
	} `json:"collection,omitempty"`

	Adapter struct {
		RequestTimeout   Duration `json:"request_timeout"`
		HandshakeTimeout Duration `json:"handshake_timeout"`
	} `json:"adapter,omitempty"`

	Query struct {
		Filter     json.RawMessage `json:"filter,omitempty"`
		Fields     json.RawMessage `json:"fields,omitempty"`
		Sort       []string        `json:"sort,omitempty"`
		PageOffset int             `json:"page_offset"`
		PageLimit  int             `json:"page_limit"`
	} `json:"query,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Collection: Collection{
			Host:      jsonCfg.Collection.Host,
			Path:      jsonCfg.Collection.Path,
			Type:      jsonCfg.Collection.Type,
			Realtime:  jsonCfg.Collection.Realtime,
			Inclusive: jsonCfg.Collection.Inclusive,
		},
		Adapter: Adapter{
			RequestTimeout:   time.Duration(jsonCfg.Adapter.RequestTimeout),
			HandshakeTimeout: time.Duration(jsonCfg.Adapter.HandshakeTimeout),
		},
		Query: Query{
			Filter:     string(jsonCfg.Query.Filter),
			Fields:     string(jsonCfg.Query.Fields),
			Sort:       jsonCfg.Query.Sort,
			PageOffset: jsonCfg.Query.PageOffset,
			PageLimit:  jsonCfg.Query.PageLimit,
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		Log:          Log{Level: jsonCfg.Log.Level},
		FilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
