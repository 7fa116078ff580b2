package gosync

import (
	"fmt"
	"sync"
)

// Mutex guards a value of type T. The value is only reachable while the lock
// is held, through Do. If the function passed to Do panics, the mutex is
// marked poisoned and every later acquisition fails with a *PoisonError until
// ClearPoison is called.
type Mutex[T any] struct {
	mu       sync.Mutex
	value    T
	poisoned bool
	cause    any
}

// NewMutex creates a mutex guarding v.
func NewMutex[T any](v T) *Mutex[T] {
	return &Mutex[T]{value: v}
}

// Do acquires the lock, runs fn against the guarded value and releases the
// lock on every exit path. A panic inside fn poisons the mutex and keeps
// unwinding in the caller's goroutine.
func (m *Mutex[T]) Do(fn func(v *T)) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poisoned {
		return &PoisonError{Cause: m.cause}
	}

	completed := false
	defer func() {
		if !completed {
			r := recover()
			m.poisoned = true
			m.cause = r
			if r != nil {
				panic(r)
			}
		}
	}()
	fn(&m.value)
	completed = true
	return nil
}

// Get returns a copy of the guarded value.
func (m *Mutex[T]) Get() (out T, err error) {
	err = m.Do(func(v *T) { out = *v })
	return
}

// Set replaces the guarded value.
func (m *Mutex[T]) Set(value T) error {
	return m.Do(func(v *T) { *v = value })
}

// IsPoisoned reports whether a previous holder panicked.
func (m *Mutex[T]) IsPoisoned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.poisoned
}

// ClearPoison makes the mutex usable again. The caller is responsible for
// restoring the guarded value to a consistent state.
func (m *Mutex[T]) ClearPoison() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poisoned = false
	m.cause = nil
}

func (m *Mutex[T]) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("Mutex { data: %v, poisoned: %t, .. }", m.value, m.poisoned)
}
