// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Action is the kind of change announced on a live channel.
type Action string

const (
	// ActionCreate announces a new resource on the server.
	ActionCreate Action = "create"
	// ActionUpdate announces that an existing resource changed.
	ActionUpdate Action = "update"
	// ActionDelete announces that a resource was removed.
	ActionDelete Action = "delete"

	// ActionSubscribe and ActionUnsubscribe are written by the client to
	// tell the server which resources it follows.
	ActionSubscribe   Action = "subscribe"
	ActionUnsubscribe Action = "unsubscribe"
)

// Event is a JSON text frame exchanged on the live channel.
type Event struct {
	Action Action `json:"action"`
	ID     string `json:"id"`
}
