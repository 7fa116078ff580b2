package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/panyam/gosync"
)

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// produce sends vals in order through tx, pausing interval after each, and
// closes tx when done.
func produce(ctx context.Context, tx *gosync.Sender[string], vals []string, interval time.Duration) error {
	defer tx.Close()
	for _, val := range vals {
		if err := tx.Send(val); err != nil {
			return fmt.Errorf("sending %q: %w", val, err)
		}
		if err := pause(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

// consume prints every value arriving on rx until all senders are gone.
func consume(w io.Writer, rx *gosync.Receiver[string]) ([]string, error) {
	var received []string
	stream := rx.Stream()
	for msg := range stream.OutputChan() {
		if msg.Error != nil {
			return received, msg.Error
		}
		fmt.Fprintf(w, "Got: %s\n", msg.Value)
		received = append(received, msg.Value)
	}
	return received, nil
}

// SingleMessage sends one value from a spawned task and blocks on Recv for it.
func SingleMessage(w io.Writer) (string, error) {
	tx, rx := gosync.NewChannel[string]()

	producer := gosync.Spawn(func() error {
		defer tx.Close()
		return tx.Send("hi")
	})

	received, err := rx.Recv()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Got: %s\n", received)

	_, joinErr := producer.Join()
	return received, joinErr
}

// MultipleValues has one producer send vals, pausing interval between sends,
// while the caller's goroutine prints them as they arrive.
func MultipleValues(ctx context.Context, w io.Writer, vals []string, interval time.Duration) ([]string, error) {
	return MultipleProducers(ctx, w, [][]string{vals}, interval)
}

// MultipleProducers starts one task per entry of producers, each with its
// own clone of the sender. The caller's goroutine prints values in arrival
// order until every producer has finished.
func MultipleProducers(ctx context.Context, w io.Writer, producers [][]string, interval time.Duration) ([]string, error) {
	tx, rx := gosync.NewChannel[string]()
	defer rx.Close()

	handles := make([]*gosync.JoinHandle[error], 0, len(producers))
	for _, vals := range producers {
		ptx := tx.Clone()
		handles = append(handles, gosync.Spawn(func() error {
			return produce(ctx, ptx, vals, interval)
		}))
	}
	// Only the producers' clones keep the channel open from here on.
	tx.Close()

	received, consumeErr := consume(w, rx)
	results, joinErr := gosync.JoinAll(handles)
	slog.Debug("Producers finished", "count", len(handles), "received", len(received))
	return received, errors.Join(append([]error{consumeErr, joinErr}, results...)...)
}

// MergedStreams is MultipleProducers for producers that only know how to
// write to a plain Go channel. A FanIn forwards each of those channels into
// a single receiver.
func MergedStreams(ctx context.Context, w io.Writer, producers [][]string, interval time.Duration) ([]string, error) {
	// Producers left blocked on an input by an early return are released
	// through ctx.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fanin := gosync.NewFanIn[string]()
	defer fanin.Stop()
	rx := fanin.Receiver()
	defer rx.Close()

	handles := make([]*gosync.JoinHandle[error], 0, len(producers))
	for _, vals := range producers {
		ch := make(chan string)
		if err := fanin.Add(ch); err != nil {
			return nil, err
		}
		handles = append(handles, gosync.Spawn(func() error {
			defer close(ch)
			for _, val := range vals {
				select {
				case ch <- val:
				case <-ctx.Done():
					return ctx.Err()
				}
				if err := pause(ctx, interval); err != nil {
					return err
				}
			}
			return nil
		}))
	}

	type consumed struct {
		values []string
		err    error
	}
	consumer := gosync.Spawn(func() consumed {
		values, err := consume(w, rx)
		return consumed{values, err}
	})

	// Every send on an unbuffered input has been taken by its pipe once the
	// producers return, so stopping the FanIn cannot drop a value.
	results, joinErr := gosync.JoinAll(handles)
	fanin.Stop()

	out, consumerErr := consumer.Join()
	return out.values, errors.Join(append([]error{joinErr, consumerErr, out.err}, results...)...)
}
