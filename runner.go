package gosync

// RunnerBase is embedded by the goroutine-backed primitives (Reader, Mapper,
// FanIn). It owns the control channel used to ask the goroutine to stop and
// the closed channel used to signal that it has.
type RunnerBase[C any] struct {
	controlChan chan C
	stopCmd     C
	closedChan  chan error
	closeErr    error
	// doneChan is closed together with closedChan. Stop waits on it so it
	// never consumes the error meant for ClosedChan readers.
	doneChan chan struct{}
}

// NewRunnerBase creates a runner that is sent stopCmd when Stop is called.
func NewRunnerBase[C any](stopCmd C) RunnerBase[C] {
	return RunnerBase[C]{
		controlChan: make(chan C),
		stopCmd:     stopCmd,
		closedChan:  make(chan error, 1),
		doneChan:    make(chan struct{}),
	}
}

// IsRunning returns true until the runner's goroutine has cleaned up.
func (r *RunnerBase[C]) IsRunning() bool {
	select {
	case <-r.doneChan:
		return false
	default:
		return true
	}
}

// ClosedChan is closed when the runner finishes. If it finished because of an
// error, that error is delivered first.
func (r *RunnerBase[C]) ClosedChan() <-chan error {
	return r.closedChan
}

// Stop asks the runner to finish and waits until it has. Stopping a runner
// that already finished is a no-op.
func (r *RunnerBase[C]) Stop() error {
	select {
	case r.controlChan <- r.stopCmd:
	case <-r.doneChan:
	}
	<-r.doneChan
	return nil
}

func (r *RunnerBase[C]) DebugInfo() any {
	return map[string]any{
		"running":     r.IsRunning(),
		"controlChan": r.controlChan,
	}
}

// send delivers a command to the runner goroutine. It returns false if the
// runner has already finished.
func (r *RunnerBase[C]) send(cmd C) bool {
	select {
	case r.controlChan <- cmd:
		return true
	case <-r.doneChan:
		return false
	}
}

func (r *RunnerBase[C]) cleanup() {
	if r.closeErr != nil {
		r.closedChan <- r.closeErr
	}
	close(r.closedChan)
	close(r.doneChan)
}
