package strand

// dispatch implements the section 4.3 table for a single yielded value.
// It either pushes a new current frame (CoroutineFrame / resolved
// CoroutineProvider), delegates to the Api collaborator (ApiCall /
// fallback), or hands the strand to an Awaitable (AsyncOp / Awaitable /
// resolved AwaitableProvider), and returns a
// non-nil error only when the yielded value itself could not be
// serviced — fed back into the yielding frame as a thrown error by the
// caller (Strand.handleYield).
func (s *Strand) dispatch(y any) error {
	switch v := y.(type) {
	case CoroutineFrame:
		s.pushFrame(v)
		return nil

	case CoroutineProvider:
		frame, err := v.Coroutine()
		if err != nil {
			return err
		}
		s.pushFrame(frame)
		return nil

	case ApiCall:
		frame, err := s.api.Call(s, v.Name, v.Args)
		if err != nil {
			return err
		}
		if frame != nil {
			s.pushFrame(frame)
		}
		// frame == nil, err == nil: Api arranged an eventual send/throw;
		// the strand stays parked until that resume arrives.
		return nil

	case AsyncOp:
		if v.pool == nil && s.asyncPool != nil {
			v = v.WithPool(s.asyncPool)
		}
		v.Await(s, s.api)
		return nil

	case Awaitable:
		v.Await(s, s.api)
		return nil

	case AwaitableProvider:
		a, err := v.Awaitable()
		if err != nil {
			return err
		}
		a.Await(s, s.api)
		return nil

	default:
		key, hasKey := s.currentKey()
		return s.api.Dispatch(s, key, hasKey, y)
	}
}

// pushFrame moves the current top frame onto the stack and makes v the
// new current frame, queuing its first resume (spec section 4.3,
// "nested coroutine frame").
func (s *Strand) pushFrame(v CoroutineFrame) {
	if s.current != nil {
		s.stack = append(s.stack, s.current)
	}
	s.current = v
	s.queueSync(actionSend, nil)
}

// currentKey reports the yielding frame's key, if it supports one (spec
// section 4.3, currentKey()).
func (s *Strand) currentKey() (string, bool) {
	if k, ok := s.current.(keyer); ok {
		return k.currentKey()
	}
	return "", false
}
