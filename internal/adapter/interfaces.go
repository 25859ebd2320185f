// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport collaborators of the synchronized
// collection.
//
// [Transport] issues the full-collection and single-resource GET requests
// over HTTP ([NewHTTPTransport], built on resty). [Dialer] opens the live
// push channel ([NewWebsocketDialer], built on fasthttp/websocket) and
// returns a [LiveChannel] that yields inbound event frames.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"net/url"

	"github.com/MKhiriev/live-collection/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Transport defines the request/response exchange with the resource server.
// Implementations are responsible for serialisation and for mapping
// transport-level failures to the sentinel values defined in this package.
type Transport interface {
	// Fetch GETs the collection at uri with params as query parameters and
	// decodes the response body into a [models.Document]. A non-2xx
	// response whose body still decodes into a document with server errors
	// is returned as data, not as an error.
	Fetch(ctx context.Context, uri string, params url.Values) (models.Document, error)

	// FetchOne GETs a single resource at uri and returns its row.
	FetchOne(ctx context.Context, uri string) (models.Resource, error)
}

// LiveChannel is an open push connection delivering change events for one
// resource type.
type LiveChannel interface {
	// Read blocks until the next inbound text frame arrives and returns its
	// raw payload. It returns [ErrChannelClosed] (wrapped) once Close has
	// been called, or the underlying connection error otherwise.
	Read() ([]byte, error)

	// Subscribe tells the server that the client follows resource id.
	Subscribe(id string) error

	// Unsubscribe tells the server that the client no longer follows
	// resource id.
	Unsubscribe(id string) error

	// Close closes the connection. Safe to call more than once.
	Close() error
}

// Dialer opens live channels.
type Dialer interface {
	// Dial connects to the websocket endpoint at uri.
	Dial(ctx context.Context, uri string) (LiveChannel, error)
}
