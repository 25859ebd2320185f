// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// mockWorker is a test implementation of the Worker interface that records
// the order of Start and Stop calls.
type mockWorker struct {
	name  string
	calls *[]string
}

func (m *mockWorker) Start(context.Context) {
	*m.calls = append(*m.calls, "start "+m.name)
}

func (m *mockWorker) Stop() {
	*m.calls = append(*m.calls, "stop "+m.name)
}

func TestWorkers_StartStop_Order(t *testing.T) {
	var calls []string
	w1 := &mockWorker{name: "a", calls: &calls}
	w2 := &mockWorker{name: "b", calls: &calls}
	w3 := &mockWorker{name: "c", calls: &calls}

	ws := NewWorkers(w1, w2, w3)
	ws.Start(context.Background())
	ws.Stop()

	want := []string{"start a", "start b", "start c", "stop c", "stop b", "stop a"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call[%d]: expected %q, got %q", i, want[i], calls[i])
		}
	}
}

func TestWorkers_SkipsNil(t *testing.T) {
	var calls []string
	ws := NewWorkers(nil, &mockWorker{name: "a", calls: &calls}, nil)

	ws.Start(context.Background())
	ws.Stop()

	if len(calls) != 2 {
		t.Errorf("expected 2 calls, got %v", calls)
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Start(context.Background())
	ws.Stop()
}

func TestWorkers_ZeroValue(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Start(context.Background())
	ws.Stop()
}
