// Package task runs long operations on a background goroutine and hands
// their result back to the goroutine that owns the data.
package task

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"text-creator/core"
)

// ErrPanic wraps a panic raised inside a task function.
var ErrPanic = errors.New("task: panic")

// Func is the body of a task. report publishes progress in percent.
type Func[T any] func(ctx context.Context, report func(percent int)) (T, error)

// Task is a running computation producing a T or an error.
type Task[T any] struct {
	name     string
	progress chan int
	percent  atomic.Int32
	done     chan struct{}
	cancel   context.CancelFunc

	value T
	err   error
}

// Go starts fn on a new goroutine with panic recovery. Cancelling ctx or
// calling Cancel aborts it cooperatively.
func Go[T any](ctx context.Context, name string, fn Func[T]) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		name:     name,
		progress: make(chan int, 16),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	core.Logger().Info("task started", "task", name)
	go func() {
		defer close(t.done)
		defer close(t.progress)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				core.Logger().Error("task panicked", "task", name, "panic", r, "stack", string(debug.Stack()))
				t.err = fmt.Errorf("%w in %s: %v", ErrPanic, name, r)
			}
		}()

		t.value, t.err = fn(ctx, t.report)
		if t.err == nil {
			t.report(100)
		}
	}()
	return t
}

// report never blocks: a slow reader only misses intermediate values,
// Percent always holds the latest.
func (t *Task[T]) report(p int) {
	p = max(0, min(100, p))
	t.percent.Store(int32(p))
	select {
	case t.progress <- p:
	default:
	}
}

// Name returns the label given to Go.
func (t *Task[T]) Name() string { return t.name }

// Progress streams percentages. The channel is closed when the task ends.
func (t *Task[T]) Progress() <-chan int { return t.progress }

// Percent returns the latest reported progress.
func (t *Task[T]) Percent() int { return int(t.percent.Load()) }

// Done is closed once the result is available.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Cancel asks the task to stop. The result still has to be collected.
func (t *Task[T]) Cancel() { t.cancel() }

// Wait blocks until the task finishes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		core.Logger().Info("task finished", "task", t.name, "err", t.err)
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Poll returns the result without blocking. ok is false while running.
func (t *Task[T]) Poll() (value T, ok bool, err error) {
	select {
	case <-t.done:
		return t.value, true, t.err
	default:
		var zero T
		return zero, false, nil
	}
}
