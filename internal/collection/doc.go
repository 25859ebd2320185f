// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package collection implements the synchronized collection: an in-memory
// mirror of a paginated remote resource set that is kept consistent with
// the server through full reconciliations and, optionally, a live channel
// of create/update/delete events.
//
// Entities are kept in a single ordered map keyed by identifier, so every
// indexed entity appears exactly once in arrival order and every entry is
// indexed. Mutating operations (Add, Remove, AddByID, RemoveByID, Parse,
// Fetch, Clear) and inbound live events are executed one at a time by a
// per-collection worker goroutine; callers block until their operation has
// run or their context is done. Read accessors take a shared lock and never
// wait for the queue.
//
// Typical usage:
//
//	c, err := collection.New(ctx, collection.Options{
//	    Host:     "http://api.local",
//	    Path:     "v1",
//	    Type:     "people",
//	    Realtime: true,
//	}, transport, log)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if _, err = c.Fetch(ctx, models.FindOptions{Sort: []string{"name"}}); err != nil {
//	    return err
//	}
package collection
