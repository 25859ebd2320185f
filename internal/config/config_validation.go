// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every consumer. Client-specific rules live in
// [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 || cfg.Adapter.HandshakeTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	c := cfg.Collection
	if c.Host == "" || c.Path == "" || c.Type == "" {
		return fmt.Errorf("%w: host, path and type are required", ErrInvalidCollectionConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if c.Realtime && cfg.Adapter.HandshakeTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Query.PageOffset < 0 || cfg.Query.PageLimit < 0 {
		return ErrInvalidQueryConfigs
	}
	if _, err := cfg.Query.FindOptions(); err != nil {
		return err
	}

	if cfg.Workers.RefreshInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	return nil
}
