// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package collection

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/live-collection/internal/adapter"
	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/entity"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/models"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection mirrors one remote resource collection.
type Collection struct {
	host string
	path string
	typ  string

	transport    adapter.Transport
	factory      entity.Factory
	logger       *logger.Logger
	onAsyncError func(context.Context, error)

	mu        sync.RWMutex
	entries   *orderedmap.OrderedMap[string, entity.Handle]
	offset    int
	limit     int
	total     int
	errors    []models.ServerError
	channel   adapter.LiveChannel
	inclusive bool

	tasks   chan *task
	done    chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
	once    sync.Once
	pumpWG  sync.WaitGroup

	// inHandler is set while the reader goroutine runs the async error
	// handler.
	inHandler atomic.Bool

	// ctx scopes live event handling; it is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
}

// New validates opts, opens the live channel when opts.Realtime is set and
// starts the operation worker. A failed dial fails construction.
func New(ctx context.Context, opts Options, transport adapter.Transport, log *logger.Logger, options ...Option) (*Collection, error) {
	opts = opts.normalized()
	switch {
	case opts.Host == "":
		return nil, fmt.Errorf("%w: host is required", ErrConfiguration)
	case opts.Path == "":
		return nil, fmt.Errorf("%w: path is required", ErrConfiguration)
	case opts.Type == "":
		return nil, fmt.Errorf("%w: type is required", ErrConfiguration)
	case transport == nil:
		return nil, fmt.Errorf("%w: transport is required", ErrConfiguration)
	}

	if log == nil {
		log = logger.Nop()
	}

	s := settings{queueSize: defaultQueueSize}
	for _, option := range options {
		option(&s)
	}
	if s.factory == nil {
		s.factory = entity.NewFactory(transport)
	}

	c := &Collection{
		host:      opts.Host,
		path:      opts.Path,
		typ:       opts.Type,
		transport: transport,
		factory:   s.factory,
		entries:   orderedmap.New[string, entity.Handle](),
		inclusive: opts.Inclusive,
		tasks:     make(chan *task, s.queueSize),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	c.logger = log.WithField("collection", c.URI())
	c.onAsyncError = s.onAsyncError
	if c.onAsyncError == nil {
		c.onAsyncError = func(ctx context.Context, err error) {
			c.logger.Error().Err(err).Msg("live event handling failed")
		}
	}

	if opts.Realtime {
		dialer := s.dialer
		if dialer == nil {
			dialer = adapter.NewWebsocketDialer(config.ClientAdapter{}, log)
		}
		channel, err := dialer.Dial(ctx, c.RealtimeURI())
		if err != nil {
			return nil, fmt.Errorf("open live channel: %w", err)
		}
		c.channel = channel
	}

	c.ctx, c.cancel = context.WithCancel(context.WithoutCancel(ctx))

	go c.work()
	if c.channel != nil {
		c.pumpWG.Add(1)
		go c.pump(c.channel)
	}

	c.logger.Debug().Bool("realtime", opts.Realtime).Bool("inclusive", opts.Inclusive).Msg("collection started")
	return c, nil
}

// URI returns the collection location {host}/{path}/{type}.
func (c *Collection) URI() string {
	return c.host + "/" + c.path + "/" + c.typ
}

// RealtimeURI returns the live channel location. An http:// host is
// rewritten to ws:// and an https:// host to wss://.
func (c *Collection) RealtimeURI() string {
	host := c.host
	scheme := "ws://"
	switch {
	case strings.HasPrefix(host, "https://"):
		host = strings.TrimPrefix(host, "https://")
		scheme = "wss://"
	case strings.HasPrefix(host, "http://"):
		host = strings.TrimPrefix(host, "http://")
	}
	return scheme + host + "/" + c.path + "/" + c.typ + "/realtime"
}

// Add inserts h at the tail. An entity already held under the same id is
// unsubscribed and replaced.
func (c *Collection) Add(ctx context.Context, h entity.Handle) error {
	if h == nil {
		return fmt.Errorf("%w: nil entity", ErrValidation)
	}
	if h.ID() == "" {
		return fmt.Errorf("%w: entity id is required", ErrValidation)
	}
	return c.do(ctx, "add", func(context.Context) error {
		c.insert(h)
		return nil
	})
}

// Remove drops the entity held under h's id. Removing an entity that is not
// held leaves the collection unchanged and is not an error.
func (c *Collection) Remove(ctx context.Context, h entity.Handle) error {
	if h == nil {
		return fmt.Errorf("%w: nil entity", ErrValidation)
	}
	return c.do(ctx, "remove", func(context.Context) error {
		if !c.remove(h.ID()) {
			c.logger.Debug().Str("id", h.ID()).Msg("remove of an entity that is not held")
		}
		return nil
	})
}

// AddByID builds an unfetched entity for id, loads it and inserts it. The
// load and the insert run as one operation.
func (c *Collection) AddByID(ctx context.Context, id string) (entity.Handle, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}

	var h entity.Handle
	err := c.do(ctx, "add by id", func(ctx context.Context) error {
		var err error
		h, err = c.addByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// RemoveByID drops the entity held under id.
func (c *Collection) RemoveByID(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	return c.do(ctx, "remove by id", func(context.Context) error {
		if !c.remove(id) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil
	})
}

// Parse replaces the whole state of the collection with doc.
func (c *Collection) Parse(ctx context.Context, doc models.Document) error {
	return c.do(ctx, "parse", func(context.Context) error {
		c.reconcile(doc)
		return nil
	})
}

// Clear drops every entity and resets errors and pagination.
func (c *Collection) Clear(ctx context.Context) error {
	return c.Parse(ctx, models.Document{Data: []models.Resource{}})
}

// Fetch queries the collection location with opts and reconciles against the
// response. Transport failures are returned as the transport reported them
// and leave the state untouched.
func (c *Collection) Fetch(ctx context.Context, opts models.FindOptions) (*Collection, error) {
	params, err := opts.Values()
	if err != nil {
		return nil, fmt.Errorf("encode find options: %w", err)
	}

	err = c.do(ctx, "fetch", func(ctx context.Context) error {
		uri := c.URI()
		doc, err := c.transport.Fetch(ctx, uri, params)
		if err != nil {
			c.logger.Debug().Err(err).Str("uri", uri).Msg("fetch failed")
			return err
		}
		c.reconcile(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Close stops the worker, unsubscribes every entity, closes the live channel
// and waits for the reader goroutine. Later calls return nil. Held entities
// stay readable.
//
// Close may be called from the async error handler. It then returns without
// waiting for the reader goroutine, which exits once the handler returns.
func (c *Collection) Close() error {
	var err error
	c.once.Do(func() {
		c.closed.Store(true)
		close(c.done)
		c.cancel()
		<-c.stopped

		c.mu.Lock()
		if c.channel != nil {
			for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
				c.unsubscribe(pair.Value)
			}
			err = c.channel.Close()
		}
		c.mu.Unlock()

		if !c.inHandler.Load() {
			c.pumpWG.Wait()
		}
		c.logger.Debug().Msg("collection closed")
	})
	return err
}

// Len returns the number of held entities.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries.Len()
}

// Get returns the entity held under id.
func (c *Collection) Get(id string) (entity.Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries.Get(id)
}

// Has reports whether an entity is held under id.
func (c *Collection) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Entries returns the held entities in arrival order.
func (c *Collection) Entries() []entity.Handle {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Handle, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// IDs returns the held identifiers in arrival order.
func (c *Collection) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Meta returns the pagination metadata of the last reconciliation.
func (c *Collection) Meta() models.Meta {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.Meta{Offset: c.offset, Limit: c.limit, Total: c.total}
}

func (c *Collection) Offset() int { return c.Meta().Offset }
func (c *Collection) Limit() int  { return c.Meta().Limit }
func (c *Collection) Total() int  { return c.Meta().Total }

// Errors returns a copy of the server-reported errors of the last
// reconciliation.
func (c *Collection) Errors() []models.ServerError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.errors)
}

// Errored returns the number of server-reported errors.
func (c *Collection) Errored() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.errors)
}

// Inclusive reports whether live create events insert entities.
func (c *Collection) Inclusive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inclusive
}

// SetInclusive toggles whether live create events insert entities.
func (c *Collection) SetInclusive(inclusive bool) {
	c.mu.Lock()
	c.inclusive = inclusive
	c.mu.Unlock()
}

// Realtime reports whether the collection follows a live channel.
func (c *Collection) Realtime() bool {
	return c.channel != nil
}

// The methods below run on the worker goroutine only.

func (c *Collection) insert(h entity.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := h.ID()
	if old, ok := c.entries.Get(id); ok {
		c.logger.Debug().Str("id", id).Msg("replacing entity with the same id")
		c.unsubscribe(old)
		c.entries.Delete(id)
	}
	c.entries.Set(id, h)
	c.subscribe(h)
}

func (c *Collection) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.entries.Get(id)
	if !ok {
		return false
	}
	c.unsubscribe(h)
	c.entries.Delete(id)
	return true
}

func (c *Collection) addByID(ctx context.Context, id string) (entity.Handle, error) {
	h := c.factory(entity.Ref{
		Host: c.host,
		URI:  c.URI(),
		Type: c.typ,
		ID:   id,
	})
	if err := h.Load(ctx); err != nil {
		return nil, err
	}
	c.insert(h)
	return h, nil
}

func (c *Collection) reconcile(doc models.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// unsubscribe before anything is dropped so no update lands on a handle
	// that is being torn down
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		c.unsubscribe(pair.Value)
	}

	c.entries = orderedmap.New[string, entity.Handle](len(doc.Data))
	c.errors = nil
	c.offset, c.limit, c.total = 0, 0, 0

	if doc.Errors != nil {
		c.errors = slices.Clone(doc.Errors)
	}

	uri := c.URI()
	for _, row := range doc.Data {
		if row.ID == "" {
			c.logger.Warn().Msg("skipping row without id")
			continue
		}
		h := c.factory(entity.Ref{
			Host:       c.host,
			URI:        uri,
			Type:       c.typ,
			ID:         row.ID,
			Attributes: row.Attributes,
		})
		if old, ok := c.entries.Get(row.ID); ok {
			c.unsubscribe(old)
			c.entries.Delete(row.ID)
		}
		c.entries.Set(row.ID, h)
		c.subscribe(h)
	}

	if doc.Meta != nil {
		c.offset, c.limit, c.total = doc.Meta.Offset, doc.Meta.Limit, doc.Meta.Total
	}

	c.logger.Debug().
		Int("entities", c.entries.Len()).
		Int("errors", len(c.errors)).
		Int("total", c.total).
		Msg("collection reconciled")
}

// subscribe and unsubscribe expect c.mu to be held. A failed write does not
// roll back the index; it is logged and the pump reports a broken channel.
func (c *Collection) subscribe(h entity.Handle) {
	if c.channel == nil {
		return
	}
	if err := h.Subscribe(c.channel); err != nil {
		c.logger.Warn().Err(err).Str("id", h.ID()).Msg("subscribe failed")
	}
}

func (c *Collection) unsubscribe(h entity.Handle) {
	if c.channel == nil {
		return
	}
	if err := h.Unsubscribe(c.channel); err != nil {
		c.logger.Warn().Err(err).Str("id", h.ID()).Msg("unsubscribe failed")
	}
}
