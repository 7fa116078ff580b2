package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/panyam/gosync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	producerA = []string{"hi", "from", "the", "thread"}
	producerB = []string{"more", "messages", "for", "you"}
)

func lines(b *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(b.String()), "\n")
}

// inOrder reports whether want appears in got as a subsequence.
func inOrder(got, want []string) bool {
	i := 0
	for _, v := range got {
		if i < len(want) && v == want[i] {
			i++
		}
	}
	return i == len(want)
}

func TestMutexScope(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, MutexScope(&out))
	assert.Equal(t, []string{
		"m = Mutex { data: 5, poisoned: false, .. }",
		"m = Mutex { data: 6, poisoned: false, .. }",
	}, lines(&out))
}

func TestSharedCounter(t *testing.T) {
	var out bytes.Buffer
	total, err := SharedCounter(&out, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, "Result: 10\n", out.String())
}

func TestSharedCounterNoWorkers(t *testing.T) {
	var out bytes.Buffer
	total, err := SharedCounter(&out, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestNegativeWorkers(t *testing.T) {
	var out bytes.Buffer
	_, err := SharedCounter(&out, -1, 0)
	assert.ErrorIs(t, err, ErrNegativeWorkers)

	err = PoisonedCounter(&out, -3, 0)
	assert.ErrorIs(t, err, ErrNegativeWorkers)
	assert.Empty(t, out.String())
}

func TestPoisonedCounter(t *testing.T) {
	var out bytes.Buffer
	err := PoisonedCounter(&out, 10, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, gosync.ErrTaskPanicked)
	assert.ErrorIs(t, err, gosync.ErrPoisoned)
	assert.Contains(t, err.Error(), "worker 4 failed holding the lock")
	assert.Empty(t, out.String())
}

func TestPoisonedCounterNeverFails(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PoisonedCounter(&out, 3, -1))
	assert.Equal(t, "Result: 3\n", out.String())
}

func TestSingleMessage(t *testing.T) {
	var out bytes.Buffer
	got, err := SingleMessage(&out)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	assert.Equal(t, "Got: hi\n", out.String())
}

func TestMultipleValues(t *testing.T) {
	var out bytes.Buffer
	got, err := MultipleValues(context.Background(), &out, producerA, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, producerA, got)
	assert.Equal(t, []string{"Got: hi", "Got: from", "Got: the", "Got: thread"}, lines(&out))
}

func TestMultipleProducers(t *testing.T) {
	var out bytes.Buffer
	got, err := MultipleProducers(context.Background(), &out, [][]string{producerA, producerB}, time.Millisecond)
	require.NoError(t, err)

	require.Len(t, got, 8)
	assert.ElementsMatch(t, append(append([]string{}, producerA...), producerB...), got)
	assert.True(t, inOrder(got, producerA), "producer A out of order: %v", got)
	assert.True(t, inOrder(got, producerB), "producer B out of order: %v", got)
	assert.Len(t, lines(&out), 8)
}

func TestMultipleProducersCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	got, err := MultipleProducers(ctx, &out, [][]string{producerA, producerB}, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	// Each producer gets its first value out before noticing the cancellation.
	assert.ElementsMatch(t, []string{"hi", "more"}, got)
}

func TestMergedStreams(t *testing.T) {
	var out bytes.Buffer
	got, err := MergedStreams(context.Background(), &out, [][]string{producerA, producerB}, time.Millisecond)
	require.NoError(t, err)

	require.Len(t, got, 8)
	assert.ElementsMatch(t, append(append([]string{}, producerA...), producerB...), got)
	assert.True(t, inOrder(got, producerA), "producer A out of order: %v", got)
	assert.True(t, inOrder(got, producerB), "producer B out of order: %v", got)
}

func TestMergedStreamsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	done := make(chan struct{})
	var got []string
	var err error
	go func() {
		defer close(done)
		got, err = MergedStreams(ctx, &out, [][]string{producerA, producerB}, time.Hour)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("MergedStreams did not return after cancellation")
	}
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, len(got), 2)
}
