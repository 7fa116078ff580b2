// Package gosync provides shared-state and message-passing primitives for
// goroutines, with failure propagation built in.
//
// The main components include:
//
//   - Mutex: a value reachable only under its lock, via scoped acquisition
//     (Do). A panic while holding the lock poisons it, and every later
//     acquisition returns a *PoisonError instead of exposing half-updated data.
//   - Counter: an integer shared by many tasks, built on Mutex.
//   - Spawn / JoinHandle: start a task and join it later. A panic inside the
//     task is reported by Join as a *PanicError rather than crashing silently.
//   - NewChannel: an unbounded multi-producer, single-consumer channel with
//     cloneable Sender handles. The Receiver sees ErrDisconnected once every
//     Sender is closed and the queue has been drained.
//   - Reader: a goroutine that keeps calling a read function and delivers the
//     results over a Go channel. Receiver.Stream uses it for range loops.
//   - Mapper / Pipe: forward values from a plain Go channel into a Sender.
//   - FanIn: merge any number of plain Go channels into one Receiver.
//
// Goroutine-backed components signal completion through ClosedChan() and
// can be stopped with Stop().
package gosync
