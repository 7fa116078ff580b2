package gosync

// Message is what a Reader emits: either a received value or the error that
// ended the stream.
type Message[T any] struct {
	Value T     // The received value
	Error error // Set on the last message when the read failed
}
