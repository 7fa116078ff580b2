// Package demo holds the scenarios run by the executables under cmd/. Each
// scenario prints plain lines to the writer it is given and returns an error
// instead of exiting, so it can be tested.
package demo

import (
	"errors"
	"fmt"
	"io"

	"github.com/panyam/gosync"
)

// ErrNegativeWorkers is returned when a scenario is asked to start fewer than
// zero workers.
var ErrNegativeWorkers = errors.New("worker count must not be negative")

// MutexScope changes a guarded value inside a scoped acquisition and prints
// the mutex before and after.
func MutexScope(w io.Writer) error {
	m := gosync.NewMutex(5)
	fmt.Fprintf(w, "m = %v\n", m)

	if err := m.Do(func(num *int) { *num = 6 }); err != nil {
		return err
	}

	fmt.Fprintf(w, "m = %v\n", m)
	return nil
}

// SharedCounter starts workers tasks that each increment one shared counter,
// joins them all and prints the final value.
func SharedCounter(w io.Writer, workers, initial int) (int, error) {
	if workers < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNegativeWorkers, workers)
	}
	counter := gosync.NewCounter(initial)

	handles := make([]*gosync.JoinHandle[error], 0, workers)
	for range workers {
		handles = append(handles, gosync.Spawn(counter.Increment))
	}

	results, err := gosync.JoinAll(handles)
	if err = errors.Join(append([]error{err}, results...)...); err != nil {
		return 0, fmt.Errorf("joining workers: %w", err)
	}

	total, err := counter.Read()
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "Result: %d\n", total)
	return total, nil
}

// PoisonedCounter is SharedCounter where the worker with index failAt panics
// while holding the lock. The returned error carries the panic reported by
// Join and the poisoning seen by every later acquisition.
func PoisonedCounter(w io.Writer, workers, failAt int) error {
	if workers < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeWorkers, workers)
	}
	counter := gosync.NewCounter(0)

	handles := make([]*gosync.JoinHandle[error], 0, workers)
	for i := range workers {
		handles = append(handles, gosync.Spawn(func() error {
			if i == failAt {
				return counter.Do(func(v *int) {
					*v++
					panic(fmt.Sprintf("worker %d failed holding the lock", i))
				})
			}
			return counter.Increment()
		}))
	}

	results, joinErr := gosync.JoinAll(handles)
	errs := append([]error{joinErr}, results...)

	total, err := counter.Read()
	if err != nil {
		errs = append(errs, fmt.Errorf("reading counter: %w", err))
	} else {
		fmt.Fprintf(w, "Result: %d\n", total)
	}
	return errors.Join(errs...)
}
