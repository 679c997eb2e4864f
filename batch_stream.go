package strand

// completionEvent is one spawned entry point's terminal notification,
// tagged with its submission index (grounded on the teacher's
// completionEvent used by its preserve-order reorderer).
type completionEvent struct {
	idx     int
	val     any
	err     error
	present bool
}

// streamReorderer consumes completion events and emits Results to out
// strictly in submission order, buffering out-of-order completions
// (grounded on the teacher's reorderer.run/flushContiguous).
type streamReorderer struct {
	events <-chan completionEvent
	out    chan<- Result
}

func (r *streamReorderer) run() {
	next := 0
	buf := make(map[int]Result)

	flush := func() {
		for {
			v, ok := buf[next]
			if !ok {
				break
			}
			r.out <- v
			delete(buf, next)
			next++
		}
	}

	for ev := range r.events {
		if ev.present {
			buf[ev.idx] = Result{Value: ev.val}
		} else {
			buf[ev.idx] = Result{Err: ev.err}
		}
		flush()
	}
	flush()
	close(r.out)
}

// ExecuteAllOrderedStream is the streaming counterpart of
// ExecuteAllOrdered: it returns immediately with a channel that yields
// one Result per entry point, in submission order, as each becomes
// available (grounded on the teacher's RunStream/MapStream: a detached
// goroutine owns intake and waits for every started unit before closing
// the outward channel).
func ExecuteAllOrderedStream(k Kernel, entryPoints []any) <-chan Result {
	out := make(chan Result, len(entryPoints))
	if len(entryPoints) == 0 {
		close(out)
		return out
	}

	events := make(chan completionEvent, len(entryPoints))
	reord := &streamReorderer{events: events, out: out}
	go reord.run()

	go func() {
		// remaining receives one token per completion from a wrapping
		// listener; events is closed after len(entryPoints) tokens
		// rather than when k.Run() returns, since Run only drains the
		// intake queue and returns well before strands parked on an
		// AsyncOp have actually exited.
		remaining := make(chan struct{}, len(entryPoints))

		for i, ep := range entryPoints {
			i := i
			s, err := k.Spawn(ep)
			if err != nil {
				events <- completionEvent{idx: i, err: err}
				remaining <- struct{}{}
				continue
			}
			s.SetPrimaryListener(FuncListener{
				OnSend: func(v any, _ *Strand) {
					events <- completionEvent{idx: i, val: v, present: true}
					remaining <- struct{}{}
				},
				OnThrow: func(e error, _ *Strand) {
					events <- completionEvent{idx: i, err: e}
					remaining <- struct{}{}
				},
			})
		}

		k.Run()
		for i := 0; i < len(entryPoints); i++ {
			<-remaining
		}
		close(events)
	}()

	return out
}
