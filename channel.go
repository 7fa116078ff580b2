package gosync

import (
	"context"
	"sync"
	"time"
)

// queue is the state shared by every Sender and the Receiver of one channel.
type queue[T any] struct {
	mu        sync.Mutex
	items     []T
	senders   int
	rxClosed  bool
	available chan struct{} // capacity 1, poked whenever a receiver may proceed
}

func (q *queue[T]) notify() {
	select {
	case q.available <- struct{}{}:
	default:
	}
}

// NewChannel creates an unbounded multi-producer, single-consumer channel.
// Sends never block. The receiver sees ErrDisconnected once every Sender has
// been closed and all queued values have been received.
func NewChannel[T any]() (*Sender[T], *Receiver[T]) {
	q := &queue[T]{senders: 1, available: make(chan struct{}, 1)}
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

// Sender is one producer handle. Handles are created with Clone and must each
// be closed for the receiver to observe end-of-stream.
type Sender[T any] struct {
	q      *queue[T]
	mu     sync.Mutex
	closed bool
}

// Send enqueues value. It fails with ErrDisconnected if the receiver was
// closed, or ErrSenderClosed if this handle was.
func (s *Sender[T]) Send(value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSenderClosed
	}

	q := s.q
	q.mu.Lock()
	if q.rxClosed {
		q.mu.Unlock()
		return ErrDisconnected
	}
	q.items = append(q.items, value)
	q.mu.Unlock()
	q.notify()
	return nil
}

// Clone returns a new handle onto the same channel. Cloning a closed handle
// is allowed and yields an open one as long as another handle kept the
// channel connected.
func (s *Sender[T]) Clone() *Sender[T] {
	q := s.q
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.senders == 0 {
		// Every handle is gone, the clone starts out closed.
		return &Sender[T]{q: q, closed: true}
	}
	q.senders++
	return &Sender[T]{q: q}
}

// Close drops this handle. Closing twice is a no-op.
func (s *Sender[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	q := s.q
	q.mu.Lock()
	q.senders--
	last := q.senders == 0
	q.mu.Unlock()
	if last {
		q.notify()
	}
}

// Receiver is the single consumer end of a channel. Its receive methods must
// not be called from more than one goroutine at a time.
type Receiver[T any] struct {
	q *queue[T]
}

// pop takes the head of the queue. ok is false when nothing is queued; in
// that case err is ErrDisconnected if no sender remains.
func (r *Receiver[T]) pop() (value T, ok bool, err error) {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) > 0 {
		value = q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		if len(q.items) == 0 {
			q.items = nil
		}
		return value, true, nil
	}
	if q.senders == 0 || q.rxClosed {
		return value, false, ErrDisconnected
	}
	return value, false, nil
}

// Recv blocks until a value is available or every sender has been closed.
func (r *Receiver[T]) Recv() (T, error) {
	return r.RecvContext(context.Background())
}

// RecvContext is Recv that also gives up when ctx is done.
func (r *Receiver[T]) RecvContext(ctx context.Context) (T, error) {
	for {
		value, ok, err := r.pop()
		if ok || err != nil {
			return value, err
		}
		select {
		case <-r.q.available:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// RecvTimeout is Recv bounded by d. It returns ErrTimeout when d elapses.
func (r *Receiver[T]) RecvTimeout(d time.Duration) (T, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		value, ok, err := r.pop()
		if ok || err != nil {
			return value, err
		}
		select {
		case <-r.q.available:
		case <-timer.C:
			var zero T
			return zero, ErrTimeout
		}
	}
}

// TryRecv returns immediately: a value, ErrEmpty or ErrDisconnected.
func (r *Receiver[T]) TryRecv() (T, error) {
	value, ok, err := r.pop()
	if ok || err != nil {
		return value, err
	}
	return value, ErrEmpty
}

// Len returns the number of queued values.
func (r *Receiver[T]) Len() int {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	return len(r.q.items)
}

// Close drops the receiver. Queued values are discarded and later sends fail
// with ErrDisconnected.
func (r *Receiver[T]) Close() {
	q := r.q
	q.mu.Lock()
	q.rxClosed = true
	q.items = nil
	q.mu.Unlock()
	q.notify()
}

// Stream adapts the receiver into a Reader whose output channel can be ranged
// over. The output channel is closed once the channel disconnects.
func (r *Receiver[T]) Stream(opts ...ReaderOption[T]) *Reader[T] {
	return NewReader(r.RecvContext, opts...)
}
