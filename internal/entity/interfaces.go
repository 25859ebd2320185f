// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package entity defines the Entity Handle: a local proxy for one remote
// resource with a stable identifier, an attribute bag, and the ability to
// refresh itself and to follow a live channel.
package entity

import (
	"context"

	"github.com/MKhiriev/live-collection/internal/adapter"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/entity_mock.go -package=mock

// Handle is one addressable remote object owned by a single collection.
type Handle interface {
	// ID returns the stable identifier of the resource.
	ID() string

	// Type returns the resource type.
	Type() string

	// Attributes returns a copy of the current attribute bag.
	Attributes() map[string]any

	// Load refreshes the attribute bag from the server. Identity never
	// changes.
	Load(ctx context.Context) error

	// Subscribe starts following the resource on ch.
	Subscribe(ch adapter.LiveChannel) error

	// Unsubscribe stops following the resource on ch.
	Unsubscribe(ch adapter.LiveChannel) error
}

// Ref carries everything needed to construct a Handle.
type Ref struct {
	// Host is the server base address.
	Host string
	// URI is the collection location; the resource lives at URI/ID.
	URI string
	// Type is the resource type.
	Type string
	// ID is the resource identifier.
	ID string
	// Attributes is the initial attribute bag. Nil for unfetched handles.
	Attributes map[string]any
}

// Factory builds handles for a collection.
type Factory func(ref Ref) Handle
