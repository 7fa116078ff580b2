package gosync

import (
	"context"
	"errors"
	"log/slog"
)

// ReaderFunc is the type of the reader method used by the Reader goroutine primitive.
// It should return promptly once ctx is done.
type ReaderFunc[R any] func(ctx context.Context) (msg R, err error)

// Reader is a goroutine which keeps calling Read and delivers every result
// over a channel wrapped in Message structs. It finishes on the first error.
// ErrDisconnected ends the stream quietly; any other error is delivered as a
// last Message and on ClosedChan.
type Reader[R any] struct {
	RunnerBase[string]
	msgChannel chan Message[R]
	Read       ReaderFunc[R]
	OnDone     func(r *Reader[R])
}

// ReaderOption is a functional option for configuring a Reader
type ReaderOption[R any] func(*Reader[R])

// WithOutputBuffer sets the buffer size for the output channel
func WithOutputBuffer[R any](size int) ReaderOption[R] {
	return func(r *Reader[R]) {
		r.msgChannel = make(chan Message[R], size)
	}
}

// WithOnDone sets the callback to be called when the reader finishes
func WithOnDone[R any](fn func(*Reader[R])) ReaderOption[R] {
	return func(r *Reader[R]) {
		r.OnDone = fn
	}
}

// NewReader creates a new reader instance with functional options.
//
// Examples:
//
//	reader := NewReader(rx.RecvContext)
//
//	reader := NewReader(rx.RecvContext,
//	    WithOutputBuffer[string](10),
//	    WithOnDone(func(r *Reader[string]) { log.Println("done") }))
func NewReader[R any](read ReaderFunc[R], opts ...ReaderOption[R]) *Reader[R] {
	out := &Reader[R]{
		RunnerBase: NewRunnerBase("stop"),
		Read:       read,
		msgChannel: make(chan Message[R]), // default unbuffered
	}

	for _, opt := range opts {
		opt(out)
	}

	out.start()
	return out
}

func (r *Reader[R]) DebugInfo() any {
	return map[string]any{
		"base":    r.RunnerBase.DebugInfo(),
		"msgChan": r.msgChannel,
	}
}

// OutputChan returns the channel on which messages can be received. It is
// closed when the reader finishes.
func (r *Reader[R]) OutputChan() <-chan Message[R] {
	return r.msgChannel
}

func (r *Reader[R]) start() {
	ctx, cancel := context.WithCancel(context.Background())

	// Relay Stop into a cancellation of the in-flight Read.
	go func() {
		select {
		case <-r.controlChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		defer r.cleanup()
		defer cancel()
		for {
			value, err := r.Read(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, ErrDisconnected) {
					return
				}
				slog.Debug("Read Error: ", "error", err)
				r.closeErr = err
				select {
				case r.msgChannel <- Message[R]{Value: value, Error: err}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case r.msgChannel <- Message[R]{Value: value}:
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (r *Reader[R]) cleanup() {
	defer slog.Debug("Cleaned up reader")
	if r.OnDone != nil {
		r.OnDone(r)
	}
	close(r.msgChannel)
	r.RunnerBase.cleanup()
}
