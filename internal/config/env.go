// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
func parseEnv(cfg any) error {
	return parseEnvWithFile(cfg, dotEnvFile)
}

// parseEnvWithFile is parseEnv with variables from a dotenv file as the
// lower layer: the process environment wins for keys set in both. A missing
// file is not an error.
func parseEnvWithFile(cfg any, dotEnvPath string) error {
	environment := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			environment[key] = value
		}
	}

	fileVars, err := godotenv.Read(dotEnvPath)
	switch {
	case err == nil:
		for key, value := range fileVars {
			if _, set := environment[key]; !set {
				environment[key] = value
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("error reading %s: %w", dotEnvPath, err)
	}

	if err = env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
