// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/live-collection/internal/collection"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/models"
)

// RefreshWorker periodically re-fetches a collection so that entities
// missed by the live channel (or a collection without one) converge with
// the server.
type RefreshWorker struct {
	fetcher  CollectionFetcher
	opts     models.FindOptions
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshWorker creates a RefreshWorker that calls fetcher.Fetch with opts
// every interval. A non-positive interval disables the worker: Start becomes
// a no-op.
func NewRefreshWorker(fetcher CollectionFetcher, opts models.FindOptions, interval time.Duration, log *logger.Logger) *RefreshWorker {
	if log == nil {
		log = logger.Nop()
	}
	return &RefreshWorker{
		fetcher:  fetcher,
		opts:     opts,
		interval: interval,
		logger:   log.WithField("worker", "refresh"),
	}
}

// Start implements Worker. It stops any previously running loop, then
// launches a goroutine that fetches on every tick. The goroutine exits when
// ctx is cancelled, Stop is called or the collection reports it is closed.
func (w *RefreshWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Debug().Msg("periodic refresh disabled")
		return
	}

	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if !w.refresh(jobCtx) {
					return
				}
			}
		}
	}()
}

// refresh reports whether the loop should keep running.
func (w *RefreshWorker) refresh(ctx context.Context) bool {
	c, err := w.fetcher.Fetch(ctx, w.opts)
	switch {
	case err == nil:
		if c != nil {
			w.logger.Debug().Int("entities", c.Len()).Int("errored", c.Errored()).Msg("collection refreshed")
		}
		return true
	case errors.Is(err, collection.ErrClosed):
		w.logger.Debug().Msg("collection closed, refresh stopped")
		return false
	case ctx.Err() != nil:
		return false
	default:
		w.logger.Warn().Err(err).Msg("refresh failed")
		return true
	}
}

// Stop implements Worker. It cancels the loop and blocks until the
// goroutine has exited. Safe to call when the worker is not running.
func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
