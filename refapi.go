package strand

import (
	"fmt"
	"time"
)

// RefAPI is a minimal reference Api implementation wiring two host
// operations atop a real timer, useful for tests and examples (spec
// section 6, section 9). It recognizes two ApiCall names:
//
//   - "sleep", args[0] time.Duration: resumes the strand with nil after
//     the duration elapses.
//   - "cooperate": resumes the strand with nil on the next tick of the
//     host's own scheduler, implemented here via a zero-duration timer
//     so the call stack genuinely unwinds before resuming.
//
// Any other name is rejected with an error, which is thrown into the
// yielding frame. Unrecognized yielded values (the Api.Dispatch path)
// are likewise rejected.
type RefAPI struct{}

// Call implements Api.
func (RefAPI) Call(s *Strand, name string, args []any) (CoroutineFrame, error) {
	switch name {
	case "sleep":
		d, ok := singleDuration(args)
		if !ok {
			return nil, fmt.Errorf("%s: sleep requires a time.Duration argument", Namespace)
		}
		timer := time.AfterFunc(d, func() { s.Send(nil, nil) })
		s.SetTerminator(func() { timer.Stop() })
		return nil, nil

	case "cooperate":
		timer := time.AfterFunc(0, func() { s.Send(nil, nil) })
		s.SetTerminator(func() { timer.Stop() })
		return nil, nil

	default:
		return nil, fmt.Errorf("%s: unrecognized api call %q", Namespace, name)
	}
}

// Dispatch implements Api.
func (RefAPI) Dispatch(s *Strand, _ string, _ bool, value any) error {
	return fmt.Errorf("%s: strand %d yielded an unrecognized value (%T)", Namespace, s.id, value)
}

func singleDuration(args []any) (time.Duration, bool) {
	if len(args) != 1 {
		return 0, false
	}
	d, ok := args[0].(time.Duration)
	return d, ok
}
