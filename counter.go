package gosync

// Counter is an integer shared between tasks. Every mutation goes through a
// poisonable Mutex so no increment is lost or applied twice.
type Counter struct {
	m *Mutex[int]
}

// NewCounter creates a counter starting at initial.
func NewCounter(initial int) *Counter {
	return &Counter{m: NewMutex(initial)}
}

// Increment adds one to the counter.
func (c *Counter) Increment() error {
	return c.Add(1)
}

// Add adds n to the counter.
func (c *Counter) Add(n int) error {
	return c.m.Do(func(v *int) { *v += n })
}

// Read returns the current value.
func (c *Counter) Read() (int, error) {
	return c.m.Get()
}

// Do runs fn under the counter's lock. Used to build multi-step updates.
func (c *Counter) Do(fn func(v *int)) error {
	return c.m.Do(fn)
}

func (c *Counter) String() string {
	return c.m.String()
}
