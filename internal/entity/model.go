package entity

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/MKhiriev/live-collection/internal/adapter"
)

// Model is the default [Handle]. It loads itself with a single-resource GET
// through the collection's transport.
type Model struct {
	transport adapter.Transport

	host string
	uri  string
	typ  string
	id   string

	mu         sync.RWMutex
	attributes map[string]any
}

// NewFactory returns a [Factory] producing [Model] handles that load
// through transport.
func NewFactory(transport adapter.Transport) Factory {
	return func(ref Ref) Handle {
		return NewModel(transport, ref)
	}
}

// NewModel constructs a Model from ref. The attribute bag is copied.
func NewModel(transport adapter.Transport, ref Ref) *Model {
	return &Model{
		transport:  transport,
		host:       ref.Host,
		uri:        ref.URI,
		typ:        ref.Type,
		id:         ref.ID,
		attributes: maps.Clone(ref.Attributes),
	}
}

func (m *Model) ID() string   { return m.id }
func (m *Model) Type() string { return m.typ }
func (m *Model) Host() string { return m.host }

// URI returns the location of the resource.
func (m *Model) URI() string {
	return m.uri + "/" + m.id
}

// Attributes implements [Handle].
func (m *Model) Attributes() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.attributes)
}

// Loaded reports whether the attribute bag has ever been populated.
func (m *Model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attributes != nil
}

// Load implements [Handle]. The attribute bag is replaced wholesale; a row
// carrying a different id is rejected and leaves the model untouched.
func (m *Model) Load(ctx context.Context) error {
	row, err := m.transport.FetchOne(ctx, m.URI())
	if err != nil {
		return fmt.Errorf("load %s %s: %w", m.typ, m.id, err)
	}
	if row.ID != "" && row.ID != m.id {
		return fmt.Errorf("load %s %s: %w: got id %q", m.typ, m.id, ErrIdentityMismatch, row.ID)
	}

	attributes := row.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}

	m.mu.Lock()
	m.attributes = attributes
	m.mu.Unlock()

	return nil
}

// Subscribe implements [Handle].
func (m *Model) Subscribe(ch adapter.LiveChannel) error {
	if err := ch.Subscribe(m.id); err != nil {
		return fmt.Errorf("subscribe %s %s: %w", m.typ, m.id, err)
	}
	return nil
}

// Unsubscribe implements [Handle].
func (m *Model) Unsubscribe(ch adapter.LiveChannel) error {
	if err := ch.Unsubscribe(m.id); err != nil {
		return fmt.Errorf("unsubscribe %s %s: %w", m.typ, m.id, err)
	}
	return nil
}
