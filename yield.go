package strand

// This file defines the closed taxonomy of values a coroutine may
// yield (spec section 4.3). Each variant has exactly one dispatch rule,
// applied in Strand.dispatch.

// CoroutineProvider is asked for a CoroutineFrame lazily. A yielded
// CoroutineProvider is resolved once, at dispatch time; if resolution
// fails the error is fed into the yielding frame as though it had
// itself thrown (spec section 4.3, section 7 "dispatch errors").
type CoroutineProvider interface {
	Coroutine() (CoroutineFrame, error)
}

// Awaitable is told to await a strand; it is responsible for eventually
// calling exactly one of Strand.send or Strand.throw, possibly
// synchronously during Await itself (spec section 4.2 step 6, the
// "synchronous resume during await" case).
type Awaitable interface {
	Await(s *Strand, api Api)
}

// AwaitableProvider is asked for an Awaitable lazily, the same way
// CoroutineProvider is asked for a CoroutineFrame lazily.
type AwaitableProvider interface {
	Awaitable() (Awaitable, error)
}

// ApiCall is a yielded request to invoke a named operation on the
// strand's Api collaborator (spec section 4.3, section 6). Api
// implementations construct these directly; the engine does not
// interpret Name or Args beyond routing them to Api.Call.
type ApiCall struct {
	Name string
	Args []any
}

// Yield wraps name and args as an ApiCall record. Convenience for
// coroutine bodies that name an operation inline.
func Yield(name string, args ...any) ApiCall {
	return ApiCall{Name: name, Args: args}
}

// keyer is implemented by frames whose host representation supports
// keyed yields (spec section 4.3, currentKey()). Frames that don't
// support this return ("", false) and the engine passes a null sentinel
// to Api.Dispatch.
type keyer interface {
	currentKey() (string, bool)
}
