package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
)

// configBuilder collects partial configs in priority order. build merges
// them so that a field set by an earlier source is never overwritten by a
// later one.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

// add appends the result of load, or records its error. Errors from every
// source are joined so a single build reports all of them.
func (b *configBuilder) add(load func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := load()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		envCfg := &StructuredConfig{}
		return envCfg, parseEnv(envCfg)
	})
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		return parseFlags(args)
	})
}

// withFile loads the file named by the highest-priority source that set a
// config path. Files ending in .toml are read as TOML, anything else as JSON.
// It is a no-op when no source named a file.
func (b *configBuilder) withFile() *configBuilder {
	path := b.filePath()
	if path == "" {
		return b
	}

	return b.add(func() (*StructuredConfig, error) {
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			return parseTOML(path)
		}
		return parseJSON(path)
	})
}

func (b *configBuilder) filePath() string {
	for _, cfg := range b.configs {
		if cfg.FilePath != "" {
			return cfg.FilePath
		}
	}
	return ""
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		return defaultConfig(), nil
	})
}
