package gosync

import (
	"errors"
	"log/slog"
	"runtime/debug"
)

// JoinHandle is returned by Spawn and lets the spawning goroutine wait for the
// task's result.
type JoinHandle[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// errTaskExited is the PanicError value for a task that ended through
// runtime.Goexit instead of returning.
var errTaskExited = errors.New("task exited without returning")

// Spawn runs fn on a new goroutine. A panic inside fn is recovered on that
// goroutine and reported by Join as a *PanicError, as is fn ending through
// runtime.Goexit.
func Spawn[T any](fn func() T) *JoinHandle[T] {
	h := &JoinHandle[T]{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		completed := false
		defer func() {
			if completed {
				return
			}
			r := recover()
			if r == nil {
				r = errTaskExited
			}
			slog.Debug("Task panicked", "value", r)
			h.err = &PanicError{Value: r, Stack: debug.Stack()}
		}()
		h.result = fn()
		completed = true
	}()
	return h
}

// Go is Spawn for tasks without a result.
func Go(fn func()) *JoinHandle[struct{}] {
	return Spawn(func() struct{} {
		fn()
		return struct{}{}
	})
}

// Join blocks until the task finishes and returns its result, or the panic it
// died with.
func (h *JoinHandle[T]) Join() (T, error) {
	<-h.done
	return h.result, h.err
}

// Done is closed once the task has finished.
func (h *JoinHandle[T]) Done() <-chan struct{} {
	return h.done
}

// JoinAll waits for every handle. Results are in handle order. All handles
// are joined even when one fails; the errors are joined together.
func JoinAll[T any](handles []*JoinHandle[T]) ([]T, error) {
	results := make([]T, len(handles))
	var errs []error
	for i, h := range handles {
		v, err := h.Join()
		results[i] = v
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}
