package gosync

import (
	"errors"
	"fmt"
)

var (
	// ErrPoisoned is matched by every PoisonError.
	ErrPoisoned = errors.New("mutex poisoned")

	// ErrTaskPanicked is matched by every PanicError returned from Join.
	ErrTaskPanicked = errors.New("task panicked")

	// ErrDisconnected is returned by Send when the receiver is gone and by Recv
	// once every sender has been closed and the queue is drained.
	ErrDisconnected = errors.New("channel disconnected")

	// ErrSenderClosed is returned when sending through a handle that was closed.
	ErrSenderClosed = errors.New("sender closed")

	// ErrEmpty is returned by TryRecv when nothing is queued.
	ErrEmpty = errors.New("channel empty")

	// ErrTimeout is returned by RecvTimeout when the deadline passes first.
	ErrTimeout = errors.New("receive timed out")

	// ErrStopped is returned when commanding a runner that has already finished.
	ErrStopped = errors.New("runner stopped")
)

// PoisonError is returned when acquiring a Mutex whose previous holder panicked.
// Cause holds the value the holder panicked with.
type PoisonError struct {
	Cause any
}

func (e *PoisonError) Error() string {
	return fmt.Sprintf("mutex poisoned by panic: %v", e.Cause)
}

func (e *PoisonError) Is(target error) bool {
	return target == ErrPoisoned
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PoisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// PanicError carries a panic recovered on a spawned task back to whoever joins it.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrTaskPanicked
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
