package config

import "time"

const (
	defaultRequestTimeout   = 15 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
	defaultLogLevel         = "debug"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			RequestTimeout:   defaultRequestTimeout,
			HandshakeTimeout: defaultHandshakeTimeout,
		},
		Log: Log{Level: defaultLogLevel},
	}
}
