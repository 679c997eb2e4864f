package strand

import "github.com/guoyu07/strand/asyncpool"

// pendingAction names the operation queued on a strand's current frame
// (spec section 3: "action: pending operation on current, one of send,
// throw, or none").
type pendingAction int

const (
	actionNone pendingAction = iota
	actionSend
	actionThrow
)

// Strand is a scheduled task: a stack of suspended parent frames plus
// one active top frame, driven forward by the start() interpreter
// (spec sections 3-4). A Strand must only be manipulated from the
// single logical thread its owning Kernel runs on; see spec section 5.
type Strand struct {
	id     int
	kernel Kernel // non-owning back-reference; kernel must outlive its strands
	api    Api

	stack   []CoroutineFrame // bottom-first
	current CoroutineFrame   // nil once exited

	state  StrandState
	action pendingAction
	value  any // pending send value, pending thrown error, or final result

	primaryListener Listener
	listeners       []Listener
	terminator      func()
	linked          map[*Strand]struct{}

	trace       *frameTrace
	diagnostics bool
	instr       *instrumentation
	asyncPool   asyncpool.Pool
}

// NewStrand constructs a Strand from one of the four entry-point shapes
// spec section 3 describes. The strand starts in StateReady with an
// implicit queued send(nil) — the same as a freshly created generator
// that hasn't been advanced yet.
func NewStrand(k Kernel, api Api, id int, entryPoint any) (*Strand, error) {
	frame, err := normalizeEntryPoint(entryPoint)
	if err != nil {
		return nil, err
	}
	s := &Strand{
		id:              id,
		kernel:          k,
		api:             api,
		current:         frame,
		state:           StateReady,
		action:          actionSend,
		value:           nil,
		primaryListener: k,
	}
	return s, nil
}

// ID returns the strand's identifier, unique among live strands of its kernel.
func (s *Strand) ID() int { return s.id }

// Kernel returns the owning kernel.
func (s *Strand) Kernel() Kernel { return s.kernel }

// HasExited reports whether the strand has reached StateExited.
func (s *Strand) HasExited() bool { return s.state == StateExited }

// State returns the strand's current state. Exposed for tests and
// diagnostics; external callers must not branch production logic on it
// beyond HasExited (spec section 5, "external callers observe only
// id(), hasExited(), and completion via the listener protocol").
func (s *Strand) State() StrandState { return s.state }

// Awaitable returns the strand itself viewed as an Awaitable, so that
// one strand may yield another and be resumed on its completion (spec
// section 6, "awaitable() -> self").
func (s *Strand) Awaitable() Awaitable { return s }

// Await implements the Awaitable interface: waiter is registered as a
// secondary listener of s (or notified immediately if s has already
// exited), and will be resumed via its own Send/Throw when s completes.
func (s *Strand) Await(waiter *Strand, api Api) {
	s.await(waiter, api)
}

// await is the section 4.7 "secondary listeners" operation. L may be
// any Listener, including another *Strand (which implements Listener
// via send/throw below).
func (s *Strand) await(l Listener, _ Api) {
	if s.state == StateExited {
		s.notifyOne(l)
		return
	}
	s.listeners = append(s.listeners, l)
}

// send implements the Listener interface so that a *Strand can be
// registered as another strand's listener (used by Await): the
// notification resumes the waiter with the completed strand's value.
func (s *Strand) send(value any, from *Strand) { s.Send(value, from) }

// throw implements the Listener interface's failure path.
func (s *Strand) throw(err error, from *Strand) { s.Throw(err, from) }

// SetTerminator installs a one-shot cleanup callback invoked on
// Terminate. It is cleared on every resume (spec section 4.6); pass nil
// to clear it early.
func (s *Strand) SetTerminator(fn func()) {
	s.terminator = fn
}

// SetPrimaryListener replaces the primary listener (spec section 4.7).
// If s has already exited, L is notified immediately with the final
// result. Otherwise, if the displaced listener was not the kernel, it
// is notified with PrimaryListenerRemovedException.
func (s *Strand) SetPrimaryListener(l Listener) {
	previous := s.primaryListener
	s.primaryListener = l

	if s.state == StateExited {
		s.notifyOne(l)
		return
	}
	if previous != nil && previous != Listener(s.kernel) {
		previous.throw(&PrimaryListenerRemovedException{Previous: previous, id: s.id}, s)
	}
}

// ClearPrimaryListener resets the primary listener to the kernel.
func (s *Strand) ClearPrimaryListener() {
	s.SetPrimaryListener(s.kernel)
}

// Link registers other to be terminated when s exits (spec section
// 4.7). Links are uni-directional.
func (s *Strand) Link(other *Strand) {
	if s.linked == nil {
		s.linked = make(map[*Strand]struct{})
	}
	s.linked[other] = struct{}{}
}

// Unlink removes a link previously registered with Link. A no-op if
// other was never linked.
func (s *Strand) Unlink(other *Strand) {
	delete(s.linked, other)
}

// Send resumes s with value, queuing it if s is mid-dispatch (spec
// section 4.6). source identifies the strand that triggered this
// resumption, if any (nil for an external/API-originated resume).
func (s *Strand) Send(value any, source *Strand) {
	s.resume(actionSend, value, source)
}

// Throw resumes s by raising err into its current frame (spec section
// 4.6).
func (s *Strand) Throw(err error, source *Strand) {
	s.resume(actionThrow, err, source)
}

func (s *Strand) resume(action pendingAction, value any, _ *Strand) {
	if s.state == StateExited {
		return
	}
	s.terminator = nil
	s.action = action
	s.value = value

	switch s.state {
	case StateSuspendedInactive:
		checkTransition(s.state, StateRunning, false)
		s.state = StateRunning
		s.start()
	case StateSuspendedActive:
		checkTransition(s.state, StateReady, false)
		s.state = StateReady
	default:
		// READY or RUNNING: action/value recorded above; start() (already
		// running, or about to be invoked by the kernel) will observe it.
	}
}

// Terminate discards the call stack unconditionally and exits the
// strand with TerminatedException (spec section 4.5). Legal from any
// state; a no-op once EXITED. Per the spec's open question on
// terminate() from within a running frame (see DESIGN.md), this is
// permitted: a self-termination from inside the strand's own coroutine
// body sets state to EXITED immediately, and the in-progress start()
// invocation observes that at its next unwind check and returns.
func (s *Strand) Terminate() {
	if s.state == StateExited {
		return
	}
	s.stack = nil
	s.current = nil
	s.action = actionThrow
	s.value = &TerminatedException{id: s.id}

	if s.terminator != nil {
		t := s.terminator
		s.terminator = nil
		t()
	}
	if s.instr != nil {
		s.instr.wasTerminated()
	}
	s.exit()
}

// start drives the interpreter forward (spec section 4.2). Re-entrant
// calls are forbidden by the single-threaded contract; this method does
// not guard against them beyond the state-machine invariants, matching
// spec section 5's "no locking required ... must not re-enter start()
// from within start()".
func (s *Strand) start() {
	if s.state == StateExited {
		return
	}
	checkTransition(StateReady, StateRunning, false)
	s.state = StateRunning

	for {
		if s.instr != nil {
			var cont bool
			s.instr.step(func() { cont = s.stepOnce() })
			if !cont {
				return
			}
			continue
		}
		if !s.stepOnce() {
			return
		}
	}
}

// stepOnce executes one pass of the section 4.2 algorithm and reports
// whether the interpreter loop should continue iterating.
func (s *Strand) stepOnce() bool {
	// Step 1: consume a queued action, if any.
	if s.action != actionNone {
		action, value := s.action, s.value
		s.action, s.value = actionNone, nil

		var r frameResult
		if action == actionSend {
			r = s.current.resumeSend(value)
		} else {
			err, _ := value.(error)
			r = s.current.resumeThrow(err)
		}
		if s.state == StateExited {
			// Terminated from inside the frame body while it ran.
			return false
		}
		return s.observe(r)
	}
	// No action queued: nothing to do until one arrives (parked).
	checkTransition(StateRunning, StateSuspendedInactive, false)
	s.state = StateSuspendedInactive
	return false
}

// observe implements steps 2-7 of section 4.2 for one resumed frame
// result.
func (s *Strand) observe(r frameResult) bool {
	switch r.kind {
	case frameReturned:
		s.action, s.value = actionSend, r.value
		return s.unwindOrContinue()

	case frameThrew:
		s.action, s.value = actionThrow, r.err
		return s.unwindOrContinue()

	case frameYielded:
		return s.handleYield(r.value)
	}
	panic("strand: unreachable frame outcome")
}

// handleYield covers steps 3-6: trace folding, dispatch, and the
// unwind/park decision.
func (s *Strand) handleYield(y any) bool {
	checkTransition(StateRunning, StateSuspendedActive, false)
	s.state = StateSuspendedActive

	// Step 4: trace hook.
	if ct, ok := y.(CoroutineTrace); ok {
		if s.diagnostics {
			s.foldCoroutineTrace(ct)
		}
		s.queueSync(actionSend, nil)
		return s.afterDispatch()
	}
	if yt, ok := y.(YieldTrace); ok {
		if s.diagnostics {
			s.foldYieldTrace(yt)
		}
		return s.handleYield(yt.Inner)
	}

	// Step 5: dispatch.
	if err := s.dispatch(y); err != nil {
		s.queueSync(actionThrow, err)
	}
	return s.afterDispatch()
}

// queueSync queues action/value and, if the strand is still in the
// transient SUSPENDED_ACTIVE state from its own yield, advances it to
// READY — the synchronous-resume path of spec section 4.2 step 6. A
// resume arranged through the public Send/Throw API (e.g. from an
// Awaitable that completes synchronously) instead goes through resume(),
// which performs the same transition.
func (s *Strand) queueSync(action pendingAction, value any) {
	s.action, s.value = action, value
	if s.state == StateSuspendedActive {
		checkTransition(StateSuspendedActive, StateReady, false)
		s.state = StateReady
	}
}

func (s *Strand) foldCoroutineTrace(ct CoroutineTrace) {
	if s.trace == nil {
		s.trace = &frameTrace{}
	}
	s.trace.foldCoroutine(ct)
}

func (s *Strand) foldYieldTrace(yt YieldTrace) {
	if s.trace == nil {
		s.trace = &frameTrace{}
	}
	s.trace.foldYield(yt)
}

// afterDispatch implements step 6: loop on synchronous resume, return
// on exit, or park.
func (s *Strand) afterDispatch() bool {
	switch s.state {
	case StateReady:
		checkTransition(StateReady, StateRunning, false)
		s.state = StateRunning
		return true
	case StateExited:
		return false
	default: // still SUSPENDED_ACTIVE
		checkTransition(StateSuspendedActive, StateSuspendedInactive, false)
		s.state = StateSuspendedInactive
		return false
	}
}

// unwindOrContinue implements step 7: pop to the parent frame, or
// exit() if the stack is empty.
func (s *Strand) unwindOrContinue() bool {
	if len(s.stack) > 0 {
		n := len(s.stack) - 1
		s.current = s.stack[n]
		s.stack = s.stack[:n]
		checkTransition(s.state, StateRunning, false)
		s.state = StateRunning
		return true
	}
	s.current = nil
	s.exit()
	return false
}

// Annotations returns a snapshot of the trace records folded into this
// strand, or a zero value if diagnostics were never enabled (spec
// section 4.4). Records from every frame the strand has run are kept in
// one list; they are not separated per frame.
func (s *Strand) Annotations() Annotations {
	return s.trace.snapshot()
}

// exit is called exactly once per strand (spec section 4.8).
func (s *Strand) exit() {
	s.state = StateExited
	s.current = nil

	primary := s.primaryListener
	secondary := s.listeners
	s.listeners = nil

	action, value := s.action, s.value

	notify := func(l Listener) (failed bool) {
		defer func() {
			if r := recover(); r != nil {
				failed = true
				s.reportListenerFailure(errFromRecover(r))
			}
		}()
		if action == actionThrow {
			err, _ := value.(error)
			l.throw(err, s)
		} else {
			l.send(value, s)
		}
		return false
	}

	if primary != nil {
		if notify(primary) {
			s.primaryListener = nil
			s.finishExit()
			return
		}
	}
	for _, l := range secondary {
		if notify(l) {
			break
		}
	}

	s.primaryListener = nil
	s.finishExit()
}

func (s *Strand) finishExit() {
	if s.instr != nil {
		s.instr.exited()
	}

	linked := s.linked
	s.linked = nil
	for other := range linked {
		other.Unlink(s)
		func() {
			defer func() { _ = recover() }()
			other.Terminate()
		}()
	}
}

// reportListenerFailure surfaces a listener panic/failure to the
// kernel via StrandListenerException (spec section 4.8). Only the
// kernel is notified; subsequent listeners are skipped by the caller.
func (s *Strand) reportListenerFailure(cause error) {
	if s.kernel == nil {
		return
	}
	s.kernel.onListenerFailure(newStrandListenerException(s.id, cause))
}

func (s *Strand) notifyOne(l Listener) {
	if s.action == actionThrow {
		err, _ := s.value.(error)
		l.throw(err, s)
		return
	}
	l.send(s.value, s)
}
