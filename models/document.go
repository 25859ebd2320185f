// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Document is the body of a full-collection response. The collection
// replaces its whole state with the contents of a Document on every
// reconciliation.
type Document struct {
	// Data holds one row per resource, in server order.
	Data []Resource `json:"data"`

	// Errors carries server-reported errors. They are stored by the
	// collection as data and never turned into Go errors.
	Errors []ServerError `json:"errors,omitempty"`

	// Meta carries pagination metadata. When nil the collection keeps
	// offset, limit and total at zero.
	Meta *Meta `json:"meta,omitempty"`
}

// SingleDocument is the body returned for a single resource lookup
// (GET {collection}/{id}).
type SingleDocument struct {
	Data   *Resource     `json:"data"`
	Errors []ServerError `json:"errors,omitempty"`
}

// Resource is one row of a Document.
type Resource struct {
	// ID is the stable identifier of the resource, unique within a
	// collection.
	ID string `json:"id"`

	// Type is the resource type as reported by the server. It may be
	// empty; the collection's own type is authoritative.
	Type string `json:"type,omitempty"`

	// Attributes is the attribute bag of the resource.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Meta is the pagination metadata of a Document.
type Meta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// ServerError is a single error object reported by the server.
type ServerError struct {
	ID     string         `json:"id,omitempty"`
	Status string         `json:"status,omitempty"`
	Code   string         `json:"code,omitempty"`
	Title  string         `json:"title,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Source map[string]any `json:"source,omitempty"`
}

// Error implements the error interface so a ServerError can be logged or
// wrapped when a caller decides to treat it as a failure.
func (e ServerError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return e.Title + ": " + e.Detail
	case e.Detail != "":
		return e.Detail
	case e.Title != "":
		return e.Title
	case e.Code != "":
		return e.Code
	default:
		return "server error " + e.Status
	}
}
