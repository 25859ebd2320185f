// Package workers provides the background workers of the live-collection
// client and a Workers aggregate that starts and stops them together.
package workers

import (
	"context"

	"github.com/MKhiriev/live-collection/internal/collection"
	"github.com/MKhiriev/live-collection/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Start must not block: implementations spawn their own goroutines and keep
// running until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited and is safe to call on a worker that never started.
//
// Example implementation:
//
//	type MyWorker struct{ stop context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    ctx, w.stop = context.WithCancel(ctx)
//	    go process(ctx)
//	}
//
//	func (w *MyWorker) Stop() { w.stop() }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// CollectionFetcher re-queries a collection. *collection.Collection
// implements it.
type CollectionFetcher interface {
	Fetch(ctx context.Context, opts models.FindOptions) (*collection.Collection, error)
}
