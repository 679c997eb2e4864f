package strand

import "errors"

// ExecuteAllOrdered is ExecuteAll with results reassembled into the
// original entryPoints order regardless of completion order (grounded
// on the teacher's preserve-order reorderer: each entry point is
// assigned its submission index up front, and its outcome is written
// directly into that index once available — a single batch never needs
// the reorderer's cursor/buffer machinery because it waits for every
// index before returning; ExecuteAllOrderedStream below needs it).
func ExecuteAllOrdered(k Kernel, entryPoints []any) ([]any, error) {
	if len(entryPoints) == 0 {
		return nil, nil
	}

	type indexed struct {
		idx int
		Result
	}

	done := make(chan indexed, len(entryPoints))
	for i, ep := range entryPoints {
		i := i
		s, err := k.Spawn(ep)
		if err != nil {
			done <- indexed{idx: i, Result: Result{Err: err}}
			continue
		}
		s.SetPrimaryListener(FuncListener{
			OnSend:  func(v any, _ *Strand) { done <- indexed{idx: i, Result: Result{Value: v}} },
			OnThrow: func(e error, _ *Strand) { done <- indexed{idx: i, Result: Result{Err: e}} },
		})
	}

	k.Run()

	results := make([]any, len(entryPoints))
	var errs []error
	for i := 0; i < len(entryPoints); i++ {
		r := <-done
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		results[r.idx] = r.Value
	}
	return results, errors.Join(errs...)
}
