package gosync

import (
	"log"
	"sync/atomic"
)

type fanInCmd[T any] struct {
	Name           string
	AddedChannel   <-chan T
	RemovedChannel <-chan T
	// done is closed by the loop once the command has taken effect.
	done chan struct{}
}

// FanIn merges any number of plain Go channels into one multi-producer
// channel. Each input gets its own Pipe and its own Sender handle, so the
// receiver sees end-of-stream only after the FanIn is stopped and every
// input pipe has finished.
type FanIn[T any] struct {
	RunnerBase[fanInCmd[T]]
	// OnChannelRemoved is called when a channel is removed so the caller can
	// perform other cleanups etc based on this
	OnChannelRemoved func(fi *FanIn[T], inchan <-chan T)

	inputs   []*Mapper[T, T]
	count    atomic.Int32
	sender   *Sender[T]
	receiver *Receiver[T]
	pipeDone chan *Mapper[T, T]
	stopping chan struct{}
}

// NewFanIn creates a FanIn and starts it. Merged values are read from
// Receiver.
func NewFanIn[T any]() *FanIn[T] {
	tx, rx := NewChannel[T]()
	out := &FanIn[T]{
		RunnerBase: NewRunnerBase(fanInCmd[T]{Name: "stop"}),
		sender:     tx,
		receiver:   rx,
		pipeDone:   make(chan *Mapper[T, T]),
		stopping:   make(chan struct{}),
	}
	out.start()
	return out
}

// Receiver returns the consumer end of the merged stream.
func (fi *FanIn[T]) Receiver() *Receiver[T] {
	return fi.receiver
}

// Add adds one or more input channels to the FanIn.
// Panics if any input channel is nil.
func (fi *FanIn[T]) Add(inputs ...<-chan T) error {
	for _, input := range inputs {
		if input == nil {
			panic("Cannot add nil channels")
		}
		if err := fi.apply(fanInCmd[T]{Name: "add", AddedChannel: input}); err != nil {
			return err
		}
	}
	return nil
}

// Remove removes an input channel from the FanIn's monitor list.
// Values already forwarded stay queued.
func (fi *FanIn[T]) Remove(target <-chan T) error {
	return fi.apply(fanInCmd[T]{Name: "remove", RemovedChannel: target})
}

// apply hands cmd to the loop and waits until it has been carried out, so
// Count reflects it on return.
func (fi *FanIn[T]) apply(cmd fanInCmd[T]) error {
	cmd.done = make(chan struct{})
	if !fi.send(cmd) {
		return ErrStopped
	}
	select {
	case <-cmd.done:
		return nil
	case <-fi.doneChan:
		return ErrStopped
	}
}

// Count returns the number of input channels currently being monitored.
func (fi *FanIn[T]) Count() int {
	return int(fi.count.Load())
}

func (fi *FanIn[T]) cleanup() {
	close(fi.stopping)
	for _, input := range fi.inputs {
		input.Stop()
	}
	fi.inputs = nil
	fi.count.Store(0)
	fi.sender.Close()
	fi.RunnerBase.cleanup()
}

func (fi *FanIn[T]) start() {
	go func() {
		defer fi.cleanup()
		for {
			select {
			case cmd := <-fi.controlChan:
				if cmd.Name == "stop" {
					return
				} else if cmd.Name == "add" {
					fi.add(cmd.AddedChannel)
					close(cmd.done)
				} else if cmd.Name == "remove" {
					log.Println("Removing channel: ", cmd.RemovedChannel)
					fi.remove(cmd.RemovedChannel)
					close(cmd.done)
				}
			case p := <-fi.pipeDone:
				fi.pipeClosed(p)
			}
		}
	}()
}

func (fi *FanIn[T]) add(inchan <-chan T) {
	input := NewPipe(inchan, fi.sender.Clone())
	fi.inputs = append(fi.inputs, input)
	fi.count.Add(1)

	// Report pipes that end on their own (input closed) back to the loop.
	go func() {
		<-input.ClosedChan()
		select {
		case fi.pipeDone <- input:
		case <-fi.stopping:
		}
	}()
}

func (fi *FanIn[T]) removeAt(index int) {
	inchan := fi.inputs[index].input
	fi.inputs[index].Stop()
	fi.inputs[index] = fi.inputs[len(fi.inputs)-1]
	fi.inputs = fi.inputs[:len(fi.inputs)-1]
	fi.count.Add(-1)
	if fi.OnChannelRemoved != nil {
		fi.OnChannelRemoved(fi, inchan)
	}
}

func (fi *FanIn[T]) pipeClosed(p *Mapper[T, T]) {
	for index, input := range fi.inputs {
		if input == p {
			fi.removeAt(index)
			break
		}
	}
}

func (fi *FanIn[T]) remove(inchan <-chan T) {
	for index, input := range fi.inputs {
		if input.input == inchan {
			fi.removeAt(index)
			break
		}
	}
}
