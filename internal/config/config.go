// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// live-collection client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON or TOML file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Collection identifies the remote resource collection to mirror.
	Collection Collection `envPrefix:"COLLECTION_"`

	// Adapter holds timeouts of the HTTP and websocket transports.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Query holds the options of the initial and periodic fetches.
	Query Query `envPrefix:"QUERY_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// FilePath is the optional path to a JSON or TOML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// Collection identifies the mirrored collection as {Host}/{Path}/{Type}.
type Collection struct {
	// Host is the server base address, e.g. "http://localhost:8080".
	// Env: COLLECTION_HOST
	Host string `env:"HOST"`

	// Path is the API prefix, e.g. "api/v1".
	// Env: COLLECTION_PATH
	Path string `env:"PATH"`

	// Type is the resource type, e.g. "widgets".
	// Env: COLLECTION_TYPE
	Type string `env:"TYPE"`

	// Realtime opens the websocket live channel when true.
	// Env: COLLECTION_REALTIME
	Realtime bool `env:"REALTIME"`

	// Inclusive pulls unseen identifiers announced by create events into
	// the collection.
	// Env: COLLECTION_INCLUSIVE
	Inclusive bool `env:"INCLUSIVE"`
}

// Adapter holds outbound transport settings.
type Adapter struct {
	// RequestTimeout bounds a single HTTP request (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HandshakeTimeout bounds the websocket opening handshake.
	// Env: ADAPTER_HANDSHAKE_TIMEOUT
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`
}

// Query holds fetch options in their configuration form.
type Query struct {
	// Filter is a raw JSON filter structure.
	// Env: QUERY_FILTER
	Filter string `env:"FILTER"`

	// Fields is a raw JSON projection structure.
	// Env: QUERY_FIELDS
	Fields string `env:"FIELDS"`

	// Sort lists sort fields by priority.
	// Env: QUERY_SORT (comma separated)
	Sort []string `env:"SORT" envSeparator:","`

	// PageOffset and PageLimit select the fetched window.
	// Env: QUERY_PAGE_OFFSET, QUERY_PAGE_LIMIT
	PageOffset int `env:"PAGE_OFFSET"`
	PageLimit  int `env:"PAGE_LIMIT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval is the period of the full re-fetch worker. Zero
	// disables the worker.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources. Sources are merged in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables (process environment over a .env file)
//  2. Command-line flags
//  3. JSON or TOML file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		withDefaults().
		build()
}
