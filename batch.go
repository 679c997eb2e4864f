package strand

import "errors"

// Result is one spawned entry point's terminal outcome.
type Result struct {
	Value any
	Err   error
}

// ExecuteAll spawns every entry point on k, drives the kernel, and
// waits for all of them to exit before returning (grounded on the
// teacher's RunAll: owns the batch's lifecycle, collects outputs only
// after every started unit of work has signaled completion).
// Results are returned in completion order; the aggregate error is
// errors.Join of every individual failure.
func ExecuteAll(k Kernel, entryPoints []any) ([]any, error) {
	if len(entryPoints) == 0 {
		return nil, nil
	}

	done := make(chan Result, len(entryPoints))
	for _, ep := range entryPoints {
		if err := spawnSignaling(k, ep, done); err != nil {
			done <- Result{Err: err}
		}
	}

	k.Run()

	results := make([]any, 0, len(entryPoints))
	var errs []error
	for i := 0; i < len(entryPoints); i++ {
		r := <-done
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		results = append(results, r.Value)
	}
	return results, errors.Join(errs...)
}

// spawnSignaling spawns ep on k with a primary listener that forwards
// its terminal outcome to done.
func spawnSignaling(k Kernel, ep any, done chan<- Result) error {
	var s *Strand
	s, err := k.Spawn(ep)
	if err != nil {
		return err
	}
	s.SetPrimaryListener(FuncListener{
		OnSend:  func(v any, _ *Strand) { done <- Result{Value: v} },
		OnThrow: func(e error, _ *Strand) { done <- Result{Err: e} },
	})
	return nil
}
