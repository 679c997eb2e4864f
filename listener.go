package strand

// Listener receives a strand's terminal result. Exactly one of send or
// throw is invoked per completed strand per listener (spec section 6).
type Listener interface {
	send(value any, s *Strand)
	throw(err error, s *Strand)
}

// FuncListener adapts two plain functions to the Listener interface.
// Useful for tests and for ad-hoc secondary listeners registered via
// Strand.Await.
type FuncListener struct {
	OnSend  func(value any, s *Strand)
	OnThrow func(err error, s *Strand)
}

func (f FuncListener) send(value any, s *Strand) {
	if f.OnSend != nil {
		f.OnSend(value, s)
	}
}

func (f FuncListener) throw(err error, s *Strand) {
	if f.OnThrow != nil {
		f.OnThrow(err, s)
	}
}
