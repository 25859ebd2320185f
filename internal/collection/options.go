package collection

import (
	"context"
	"strings"

	"github.com/MKhiriev/live-collection/internal/adapter"
	"github.com/MKhiriev/live-collection/internal/entity"
)

const defaultQueueSize = 64

// Options are the required construction parameters of a Collection.
type Options struct {
	// Host is the server base address, e.g. "http://api.local".
	Host string
	// Path is the API prefix between host and type, e.g. "v1".
	Path string
	// Type is the resource type, the last segment of the collection URI.
	Type string
	// Realtime opens a live channel at construction time.
	Realtime bool
	// Inclusive makes live create events insert the announced entity.
	Inclusive bool
}

func (o Options) normalized() Options {
	o.Host = strings.Trim(o.Host, "/")
	o.Path = strings.Trim(o.Path, "/")
	o.Type = strings.Trim(o.Type, "/")
	return o
}

// settings holds the resolved optional collaborators.
type settings struct {
	dialer       adapter.Dialer
	factory      entity.Factory
	onAsyncError func(context.Context, error)
	queueSize    int
}

// Option customizes a Collection at construction.
type Option func(*settings)

// WithDialer sets the dialer used to open the live channel. Without it a
// websocket dialer with default timeouts is used.
func WithDialer(dialer adapter.Dialer) Option {
	return func(s *settings) {
		if dialer != nil {
			s.dialer = dialer
		}
	}
}

// WithFactory sets the constructor of entity handles.
func WithFactory(factory entity.Factory) Option {
	return func(s *settings) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithAsyncErrorHandler configures where failures of live event handling
// are reported. The handler runs on the live channel reader goroutine and
// may call back into the collection, Close included.
func WithAsyncErrorHandler(handler func(context.Context, error)) Option {
	return func(s *settings) {
		if handler != nil {
			s.onAsyncError = handler
		}
	}
}

// WithQueueSize sets the capacity of the operation queue.
func WithQueueSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.queueSize = size
		}
	}
}
