package gosync

import (
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleCounter() {
	counter := NewCounter(0)
	var handles []*JoinHandle[error]
	for range 10 {
		handles = append(handles, Spawn(counter.Increment))
	}
	JoinAll(handles)

	total, _ := counter.Read()
	fmt.Println("Result:", total)

	// Output:
	// Result: 10
}

func TestCounterNoLostIncrements(t *testing.T) {
	log.Println("============== TestCounterNoLostIncrements ================")
	for _, n := range []int{0, 1, 10, 100, 1000} {
		t.Run(fmt.Sprintf("workers=%d", n), func(t *testing.T) {
			counter := NewCounter(0)
			handles := make([]*JoinHandle[error], 0, n)
			for range n {
				handles = append(handles, Spawn(counter.Increment))
			}

			results, err := JoinAll(handles)
			require.NoError(t, err)
			for _, r := range results {
				require.NoError(t, r)
			}

			total, err := counter.Read()
			require.NoError(t, err)
			assert.Equal(t, n, total)
		})
	}
}

func TestCounterAddAndInitial(t *testing.T) {
	log.Println("============== TestCounterAddAndInitial ================")
	counter := NewCounter(40)
	require.NoError(t, counter.Add(2))
	total, err := counter.Read()
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.Equal(t, "Mutex { data: 42, poisoned: false, .. }", counter.String())
}

func TestCounterPoisoned(t *testing.T) {
	log.Println("============== TestCounterPoisoned ================")
	counter := NewCounter(0)

	_, err := Go(func() {
		counter.Do(func(v *int) { panic("bad worker") })
	}).Join()
	require.ErrorIs(t, err, ErrTaskPanicked)

	assert.ErrorIs(t, counter.Increment(), ErrPoisoned)
	_, err = counter.Read()
	assert.ErrorIs(t, err, ErrPoisoned)
}
