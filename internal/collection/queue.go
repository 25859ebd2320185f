package collection

import (
	"context"
	"fmt"
	"sync/atomic"
)

const (
	taskPending int32 = iota
	taskRunning
	taskAbandoned
)

// task is one serialized operation. result is buffered so the worker never
// blocks on a caller that stopped waiting.
type task struct {
	ctx    context.Context
	scope  string
	run    func(context.Context) error
	result chan error
	state  atomic.Int32
}

// start claims t for the worker. It fails when the caller already gave up.
func (t *task) start() bool {
	return t.state.CompareAndSwap(taskPending, taskRunning)
}

// abandon withdraws t before the worker picks it up. It fails once t runs.
func (t *task) abandon() bool {
	return t.state.CompareAndSwap(taskPending, taskAbandoned)
}

// do enqueues fn and waits for it to run. A task that was queued but not
// started when the collection closed yields ErrClosed. Once a task has
// started, its result is returned even if ctx is cancelled meanwhile.
func (c *Collection) do(ctx context.Context, scope string, fn func(context.Context) error) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t := &task{ctx: ctx, scope: scope, run: fn, result: make(chan error, 1)}
	select {
	case c.tasks <- t:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.result:
		return err
	case <-c.stopped:
		select {
		case err := <-t.result:
			return err
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		if t.abandon() {
			return ctx.Err()
		}
		// the worker finishes a started task before it stops
		return <-t.result
	}
}

func (c *Collection) work() {
	defer close(c.stopped)

	for {
		select {
		case <-c.done:
			return
		case t := <-c.tasks:
			if !t.start() {
				continue
			}
			if c.closed.Load() {
				t.result <- ErrClosed
				continue
			}
			if err := t.ctx.Err(); err != nil {
				t.result <- err
				continue
			}
			t.result <- runSafely(t.scope, func() error { return t.run(t.ctx) })
		}
	}
}

// runSafely executes fn and converts a panic into a returned error tagged
// with scope. Errors returned by fn are passed through unchanged so callers
// can still compare them with errors.Is.
func runSafely(scope string, fn func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%s: panic recovered: %v", scope, recovered)
		}
	}()

	return fn()
}
