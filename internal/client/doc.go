// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless follower application runtime.
//
// It wires the synchronized collection, the initial fetch and the
// background refresh worker into a single process lifecycle that ends when
// the run context is cancelled.
package client
