package strand

import "fmt"

// frameOutcome tags the three ways a CoroutineFrame can respond to a
// resume: still suspended with a new yielded value, completed with a
// final value, or failed with an error (spec section 3).
type frameOutcome int

const (
	frameYielded frameOutcome = iota
	frameReturned
	frameThrew
)

// frameResult is the tagged union a CoroutineFrame produces from each
// resume.
type frameResult struct {
	kind  frameOutcome
	value any
	err   error
}

// CoroutineFrame adapts a suspendable computation to the engine's
// resume/observe contract (spec section 3). Implementations must not
// be resumed concurrently; the Strand that owns a frame guarantees
// single-threaded access.
type CoroutineFrame interface {
	resumeSend(v any) frameResult
	resumeThrow(err error) frameResult
}

// Func is the body of a goroutine-backed coroutine frame. It receives a
// *Context to yield through and returns a final value or error exactly
// once. A non-nil error return is equivalent to the coroutine "throwing"
// that error with nothing left to unwind through on its own stack.
type Func func(ctx *Context) (any, error)

// Context is passed to a Func body; Yield is its only suspension point.
type Context struct {
	frame *funcFrame
}

// Yield suspends the coroutine, handing v to the scheduler as the
// yielded value, and blocks until the frame is resumed. A resumeSend
// delivers its value as the (any, nil) return; a resumeThrow delivers
// its error as the (nil, error) return, exactly as if the coroutine's
// own code had produced that error — propagation from there follows
// ordinary Go control flow (the body may recover by returning (v, nil)
// from a subsequent point, or propagate by returning the error).
func (c *Context) Yield(v any) (any, error) {
	c.frame.fromFrame <- frameResult{kind: frameYielded, value: v}
	in := <-c.frame.toFrame
	if in.isThrow {
		return nil, in.err
	}
	return in.value, nil
}

type frameInput struct {
	isThrow bool
	value   any
	err     error
}

// funcFrame runs a Func on its own goroutine, synchronized with the
// owning Strand via a pair of unbuffered channels — the same handoff
// shape as a hand-rolled coroutine built on goroutines (no native
// generators exist in Go), generalized from a plain resume/yield pair
// to the full resumeSend/resumeThrow/yielded/returned/threw contract.
type funcFrame struct {
	fn        Func
	toFrame   chan frameInput
	fromFrame chan frameResult
	started   bool
	done      bool
	trace     *frameTrace
}

func newFuncFrame(fn Func) *funcFrame {
	return &funcFrame{
		fn:        fn,
		toFrame:   make(chan frameInput),
		fromFrame: make(chan frameResult),
	}
}

func (f *funcFrame) ensureStarted() {
	if f.started {
		return
	}
	f.started = true
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.fromFrame <- frameResult{kind: frameThrew, err: fmt.Errorf("%s: frame panicked: %v", Namespace, r)}
			}
		}()

		ctx := &Context{frame: f}
		in := <-f.toFrame
		if in.isThrow {
			f.fromFrame <- frameResult{kind: frameThrew, err: in.err}
			return
		}
		v, err := f.fn(ctx)
		if err != nil {
			f.fromFrame <- frameResult{kind: frameThrew, err: err}
			return
		}
		f.fromFrame <- frameResult{kind: frameReturned, value: v}
	}()
}

func (f *funcFrame) resumeSend(v any) frameResult {
	f.ensureStarted()
	f.toFrame <- frameInput{value: v}
	r := <-f.fromFrame
	f.done = r.kind != frameYielded
	return r
}

func (f *funcFrame) resumeThrow(err error) frameResult {
	f.ensureStarted()
	f.toFrame <- frameInput{isThrow: true, err: err}
	r := <-f.fromFrame
	f.done = r.kind != frameYielded
	return r
}

// valueFrame is the trivial one-shot frame entry-point normalization's
// fourth shape wraps a plain value in (spec section 3): it yields the
// value exactly once, then completes with whatever it is next resumed
// with.
type valueFrame struct {
	val     any
	yielded bool
}

func newValueFrame(val any) *valueFrame {
	return &valueFrame{val: val}
}

func (f *valueFrame) resumeSend(v any) frameResult {
	if !f.yielded {
		f.yielded = true
		return frameResult{kind: frameYielded, value: f.val}
	}
	return frameResult{kind: frameReturned, value: v}
}

func (f *valueFrame) resumeThrow(err error) frameResult {
	if !f.yielded {
		// Nothing has run yet to interrupt; still produce the one yield.
		f.yielded = true
		return frameResult{kind: frameYielded, value: f.val}
	}
	return frameResult{kind: frameThrew, err: err}
}

// normalizeEntryPoint implements spec section 3's four entry-point
// shapes, producing a single CoroutineFrame.
func normalizeEntryPoint(ep any) (CoroutineFrame, error) {
	switch v := ep.(type) {
	case CoroutineFrame:
		return v, nil

	case Func:
		return newFuncFrame(v), nil

	case CoroutineProvider:
		return v.Coroutine()

	case func() any:
		result := v()
		switch r := result.(type) {
		case CoroutineFrame:
			return r, nil
		case Func:
			return newFuncFrame(r), nil
		default:
			return nil, &InvalidEntryPoint{Got: result}
		}

	default:
		return newValueFrame(ep), nil
	}
}
