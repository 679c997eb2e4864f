package strand

// Api is the narrow contract the engine requires from an external,
// event-loop-backed collaborator (spec section 1, section 6). The
// engine never implements event-loop mechanics itself; Api is where a
// host wires sleep/read/write/timeout/cooperate and similar domain
// operations atop its own loop.
//
// Call dispatches a yielded ApiCall record. Implementations must
// either return a non-nil CoroutineFrame to be pushed onto the
// strand's stack, or arrange an eventual Strand.send/Strand.throw and
// return (nil, nil) — in the latter case they must install a
// terminator via Strand.SetTerminator if the arrangement reserves a
// loop resource (a timer, a pending read, ...), so Strand.Terminate can
// cancel it.
//
// Dispatch is the fallback entry for any yielded value that is not one
// of the taxonomy's recognized variants (spec section 4.3's last row).
// key is the key half of the suspending expression when the host frame
// supports keyed yields, and hasKey reports whether one was available.
type Api interface {
	Call(s *Strand, name string, args []any) (CoroutineFrame, error)
	Dispatch(s *Strand, key string, hasKey bool, value any) error
}
