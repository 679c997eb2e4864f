package strand

import (
	"context"
	"fmt"

	"github.com/guoyu07/strand/asyncpool"
)

// AsyncOp bridges a blocking Go function onto a strand: yielding one
// suspends the strand until fn returns, the same way the teacher's
// worker.execute runs a task on a pooled goroutine and reports back on
// a channel (grounded on worker.go/task.go, generalized from a
// results/errors channel pair to the Awaitable send/throw protocol).
// AsyncOp implements Awaitable directly, so `yield AsyncOp{...}` is
// serviced without any Api involvement.
type AsyncOp struct {
	Ctx context.Context
	Fn  func(ctx context.Context) (any, error)

	pool *asyncpool.Pool
}

// WithPool returns a copy of op bound to a concurrency-bounding pool
// (spec section 9 supplemented feature: async ops honor the kernel's
// configured AsyncPoolSize). Kernel wires this automatically for
// AsyncOp values yielded while a pool-backed kernel drives the strand;
// callers assembling an AsyncOp by hand may call it directly.
func (op AsyncOp) WithPool(p asyncpool.Pool) AsyncOp {
	op.pool = &p
	return op
}

// Await implements Awaitable. It launches fn on its own goroutine
// (optionally permit-gated by pool) and resumes s with the result once
// fn returns, exactly once, matching the single-settle contract every
// Awaitable must uphold. A terminator is installed so that
// Strand.Terminate cancels the context fn is given, the same
// reservation-cleanup obligation refapi.go's timer-backed operations
// discharge via timer.Stop (spec section 4.7, section 5 Cancellation).
func (op AsyncOp) Await(s *Strand, _ Api) {
	var permit interface{}
	if op.pool != nil {
		permit = (*op.pool).Get()
	}

	parent := op.Ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	s.SetTerminator(cancel)

	go func() {
		defer cancel()
		if op.pool != nil {
			defer (*op.pool).Put(permit)
		}

		result, err := op.run(ctx)
		if err != nil {
			s.Throw(err, nil)
			return
		}
		s.Send(result, nil)
	}()
}

// run races fn's completion against ctx.Done(), the same shape as the
// teacher's taskResultError.execute: fn keeps running on its own
// goroutine if ctx is canceled first, but run itself returns promptly
// with ctx.Err() rather than blocking the strand's resume on a fn that
// may never check its context.
func (op AsyncOp) run(ctx context.Context) (any, error) {
	type outcome struct {
		val any
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s: async op panicked: %v", Namespace, r)}
			}
		}()
		v, err := op.Fn(ctx)
		done <- outcome{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.val, o.err
	}
}

// Async wraps fn as a zero-argument AsyncOp yield helper, the same
// convenience Yield provides for ApiCall.
func Async(fn func(ctx context.Context) (any, error)) AsyncOp {
	return AsyncOp{Fn: fn}
}
