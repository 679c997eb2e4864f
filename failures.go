package strand

import "sync"

// failureSink collects StrandFailedException/StrandListenerException
// values surfaced by exiting strands and forwards them to an outward
// channel, optionally latching a halt flag on the first one (grounded
// on the teacher's errorForwarder: first-error-cancels semantics, here
// relaxed to first-error-halts-intake since strands already in flight
// must still be allowed to finish per spec section 4.8's per-strand
// exit contract).
type failureSink struct {
	mu     sync.Mutex
	out    chan error
	halt   bool
	halted bool
}

func newFailureSink(bufferSize uint, halt bool) *failureSink {
	return &failureSink{out: make(chan error, bufferSize), halt: halt}
}

// report forwards err, dropping it if the outward channel is full
// rather than blocking the strand that is exiting.
func (f *failureSink) report(err error) {
	f.mu.Lock()
	f.halted = f.halted || f.halt
	f.mu.Unlock()

	select {
	case f.out <- err:
	default:
	}
}

func (f *failureSink) isHalted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.halted
}

func (f *failureSink) channel() <-chan error { return f.out }
