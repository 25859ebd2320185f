// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by the collection endpoint.
const (
	ParamQuery      = "query"
	ParamFields     = "fields"
	ParamSort       = "sort"
	ParamPageOffset = "page[offset]"
	ParamPageLimit  = "page[limit]"
)

// Page selects a window of the collection.
type Page struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

// FindOptions describes a collection query.
type FindOptions struct {
	// Query is an arbitrary filter structure, sent as a JSON string.
	Query any

	// Fields is an arbitrary projection structure, sent as a JSON string.
	Fields any

	// Sort lists field names by priority. Sent comma-joined.
	Sort []string

	// Page is hoisted into page[offset] and page[limit].
	Page *Page

	// Extra is passed through as-is.
	Extra map[string]string
}

// Values encodes the options into query parameters.
//
// Zero page offset and limit are omitted, and the nested page object itself
// is never sent. Extra keys never override the recognized ones.
func (o FindOptions) Values() (url.Values, error) {
	values := url.Values{}

	for k, v := range o.Extra {
		values.Set(k, v)
	}

	if o.Query != nil {
		raw, err := json.Marshal(o.Query)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		values.Set(ParamQuery, string(raw))
	}

	if o.Fields != nil {
		raw, err := json.Marshal(o.Fields)
		if err != nil {
			return nil, fmt.Errorf("encode fields: %w", err)
		}
		values.Set(ParamFields, string(raw))
	}

	if len(o.Sort) > 0 {
		values.Set(ParamSort, strings.Join(o.Sort, ","))
	}

	values.Del("page")
	if o.Page != nil {
		if o.Page.Offset != 0 {
			values.Set(ParamPageOffset, strconv.Itoa(o.Page.Offset))
		}
		if o.Page.Limit != 0 {
			values.Set(ParamPageLimit, strconv.Itoa(o.Page.Limit))
		}
	}

	return values, nil
}
