package gosync

func idMapperFunc[T any](input T) (output T, skip bool, stop bool) {
	output = input
	return
}

// Mapper moves values from a plain Go channel into a Sender, applying a
// transform on the way.
type Mapper[I any, O any] struct {
	RunnerBase[string]
	input  <-chan I
	output *Sender[O]

	// MapFunc is applied to each value in the input channel
	// and returns a tuple of 3 things - outval, skip, stop
	// if skip is false, outval is sent to the output
	// if stop is true, then the mapper stops processing any further elements.
	MapFunc func(I) (O, bool, bool)
	OnDone  func(p *Mapper[I, O])
}

// NewMapper creates a mapper from input into output. The input channel stays
// owned by the caller. The output handle is owned by the mapper and closed
// when it stops, so hand it a Clone if the caller still needs to send.
// The mapper stops when input is closed, when MapFunc asks it to, when Stop
// is called, or when the receiving end disconnects.
func NewMapper[I any, O any](input <-chan I, output *Sender[O], mapper func(I) (O, bool, bool)) *Mapper[I, O] {
	out := &Mapper[I, O]{
		RunnerBase: NewRunnerBase("stop"),
		input:      input,
		output:     output,
		MapFunc:    mapper,
	}
	out.start()
	return out
}

func (m *Mapper[I, O]) start() {
	go func() {
		defer m.cleanup()
		for {
			select {
			case <-m.controlChan:
				// stopped - only "stop" allowed here
				return
			case value, ok := <-m.input:
				if !ok {
					// we can quit here as there are no more inputs
					return
				}
				outval, skip, stop := m.MapFunc(value)
				if !skip {
					if err := m.output.Send(outval); err != nil {
						m.closeErr = err
						return
					}
				}
				if stop {
					return
				}
			}
		}
	}()
}

func (m *Mapper[I, O]) cleanup() {
	if m.OnDone != nil {
		m.OnDone(m)
	}
	m.output.Close()
	m.RunnerBase.cleanup()
}

// NewPipe creates a mapper with the identity transform.
func NewPipe[T any](input <-chan T, output *Sender[T]) *Mapper[T, T] {
	return NewMapper(input, output, idMapperFunc)
}
