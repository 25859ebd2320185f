package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// RequestIDHeader carries the outbound request identifier.
const RequestIDHeader = "X-Request-ID"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Every request leaving an HTTPClient carries an X-Request-ID header: the
// identifier stored in the request context with WithRequestID, or a fresh
// UUIDv7 when the context has none.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(5 * time.Second))
//	resp, err := client.R().SetContext(ctx).Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption configures an HTTPClient at construction time.
type HTTPClientOption func(*resty.Client)

// WithTimeout bounds every request. Non-positive values leave resty's
// default (no timeout) in place.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetHeader(key, value)
	}
}

// NewHTTPClient creates an independent HTTPClient with its own connection
// pool and the request-ID middleware installed.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	client := resty.New()
	for _, opt := range opts {
		opt(client)
	}

	ids := NewUUIDGenerator()
	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(RequestIDHeader) != "" {
			return nil
		}
		requestID, ok := GetRequestIDFromContext(r.Context())
		if !ok {
			requestID = ids.Generate()
		}
		r.SetHeader(RequestIDHeader, requestID)
		return nil
	})

	return &HTTPClient{Client: client}
}
