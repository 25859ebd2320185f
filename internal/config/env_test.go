// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"COLLECTION_HOST":      "http://localhost:8080",
		"COLLECTION_PATH":      "api/v1",
		"COLLECTION_TYPE":      "widgets",
		"COLLECTION_REALTIME":  "true",
		"COLLECTION_INCLUSIVE": "true",

		"ADAPTER_REQUEST_TIMEOUT":   "30s",
		"ADAPTER_HANDSHAKE_TIMEOUT": "5s",

		"QUERY_FILTER":      `{"color":"red"}`,
		"QUERY_FIELDS":      `["name"]`,
		"QUERY_SORT":        "name,-created",
		"QUERY_PAGE_OFFSET": "20",
		"QUERY_PAGE_LIMIT":  "10",

		"WORKERS_REFRESH_INTERVAL": "1m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.FilePath)

	assert.Equal(t, "http://localhost:8080", cfg.Collection.Host)
	assert.Equal(t, "api/v1", cfg.Collection.Path)
	assert.Equal(t, "widgets", cfg.Collection.Type)
	assert.True(t, cfg.Collection.Realtime)
	assert.True(t, cfg.Collection.Inclusive)

	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Adapter.HandshakeTimeout)

	assert.Equal(t, `{"color":"red"}`, cfg.Query.Filter)
	assert.Equal(t, `["name"]`, cfg.Query.Fields)
	assert.Equal(t, []string{"name", "-created"}, cfg.Query.Sort)
	assert.Equal(t, 20, cfg.Query.PageOffset)
	assert.Equal(t, 10, cfg.Query.PageLimit)

	assert.Equal(t, time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"COLLECTION_TYPE":         "widgets",
		"ADAPTER_REQUEST_TIMEOUT": "2s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "widgets", cfg.Collection.Type)
	assert.Empty(t, cfg.Collection.Host)
	assert.False(t, cfg.Collection.Realtime)

	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
	assert.Zero(t, cfg.Adapter.HandshakeTimeout)

	assert.Equal(t, Query{}, cfg.Query)
	assert.Empty(t, cfg.FilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "", cfg.FilePath)
	assert.Equal(t, Collection{}, cfg.Collection)
	assert.Equal(t, Adapter{}, cfg.Adapter)
	assert.Equal(t, Workers{}, cfg.Workers)
}

func TestParseEnv_InvalidBool(t *testing.T) {
	setEnvVars(t, map[string]string{"COLLECTION_REALTIME": "maybe"})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"WORKERS_REFRESH_INTERVAL": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Workers.RefreshInterval)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"COLLECTION_HOST",
		"COLLECTION_PATH",
		"COLLECTION_TYPE",
		"COLLECTION_REALTIME",
		"COLLECTION_INCLUSIVE",

		"ADAPTER_REQUEST_TIMEOUT",
		"ADAPTER_HANDSHAKE_TIMEOUT",

		"QUERY_FILTER",
		"QUERY_FIELDS",
		"QUERY_SORT",
		"QUERY_PAGE_OFFSET",
		"QUERY_PAGE_LIMIT",

		"WORKERS_REFRESH_INTERVAL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestParseEnv_LogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "error", cfg.Log.Level)
}

// ── dotenv layer ──────────────────────────────────────────────────────────────

func writeDotEnv(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseEnvWithFile_ProcessEnvWins(t *testing.T) {
	setEnvVars(t, map[string]string{"COLLECTION_HOST": "http://process-host"})
	p := writeDotEnv(t, "COLLECTION_HOST=http://file-host\nCOLLECTION_TYPE=file-type\n# comment\nQUERY_SORT=name,-age\n")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvWithFile(cfg, p))

	assert.Equal(t, "http://process-host", cfg.Collection.Host)
	assert.Equal(t, "file-type", cfg.Collection.Type)
	assert.Equal(t, []string{"name", "-age"}, cfg.Query.Sort)
}

func TestParseEnvWithFile_MissingFileIgnored(t *testing.T) {
	setEnvVars(t, map[string]string{"COLLECTION_TYPE": "widgets"})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvWithFile(cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, "widgets", cfg.Collection.Type)
}

func TestParseEnvWithFile_BadValueInFile(t *testing.T) {
	clearEnvVars(t)
	p := writeDotEnv(t, "WORKERS_REFRESH_INTERVAL=soon\n")

	err := parseEnvWithFile(&StructuredConfig{}, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnvWithFile_UnreadablePath(t *testing.T) {
	// a directory cannot be read as a dotenv file
	err := parseEnvWithFile(&StructuredConfig{}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading")
}
