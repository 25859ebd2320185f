// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the wire types shared by the transport, the entity
// handles and the synchronized collection: response documents, live channel
// events and query options.
package models
