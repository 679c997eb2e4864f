package strand

// intakeQueue is the FIFO of newly spawned, not-yet-started strands a
// Kernel's Run loop drains in submission order (grounded on the
// teacher's dispatcher/fifo executor: a buffered channel stands in for
// the teacher's tasks channel, one strand per queued task).
type intakeQueue struct {
	ch chan *Strand
}

func newIntakeQueue(bufferSize uint) *intakeQueue {
	return &intakeQueue{ch: make(chan *Strand, bufferSize)}
}

// push enqueues s. It never blocks across Kernel.Spawn calls that
// respect the configured buffer size; a full queue indicates the
// caller is spawning faster than Run can drain, the same overflow the
// teacher's AddTask panics on for a full tasks channel.
func (q *intakeQueue) push(s *Strand) {
	select {
	case q.ch <- s:
	default:
		panic("strand: intake queue is full")
	}
}

// pop returns the next queued strand, or (nil, false) if the queue is
// currently empty.
func (q *intakeQueue) pop() (*Strand, bool) {
	select {
	case s := <-q.ch:
		return s, true
	default:
		return nil, false
	}
}
