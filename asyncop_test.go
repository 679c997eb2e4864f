package strand

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guoyu07/strand/asyncpool"
	"github.com/stretchr/testify/require"
)

func TestAsyncOp_SuccessResumesWithValue(t *testing.T) {
	k := newTestKernel(t)

	got := make(chan any, 1)
	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		v, _ := ctx.Yield(Async(func(ctx context.Context) (any, error) {
			return "done", nil
		}))
		return v, nil
	}))
	require.NoError(t, err)
	s.SetPrimaryListener(FuncListener{OnSend: func(v any, _ *Strand) { got <- v }})

	k.Run()
	select {
	case v := <-got:
		require.Equal(t, "done", v)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async op to resume the strand")
	}
}

func TestAsyncOp_FailurePropagatesAsThrow(t *testing.T) {
	k := newTestKernel(t)
	boom := errors.New("boom")

	got := make(chan error, 1)
	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		v, yerr := ctx.Yield(Async(func(ctx context.Context) (any, error) {
			return nil, boom
		}))
		return v, yerr
	}))
	require.NoError(t, err)
	s.SetPrimaryListener(FuncListener{OnThrow: func(e error, _ *Strand) { got <- e }})

	k.Run()
	select {
	case e := <-got:
		require.ErrorIs(t, e, boom)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async op failure")
	}
}

func TestAsyncOp_PanicBecomesError(t *testing.T) {
	k := newTestKernel(t)

	got := make(chan error, 1)
	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		v, yerr := ctx.Yield(Async(func(ctx context.Context) (any, error) {
			panic("async kaboom")
		}))
		return v, yerr
	}))
	require.NoError(t, err)
	s.SetPrimaryListener(FuncListener{OnThrow: func(e error, _ *Strand) { got <- e }})

	k.Run()
	select {
	case e := <-got:
		require.ErrorContains(t, e, "async kaboom")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async op panic to surface")
	}
}

func TestAsyncOp_TerminateCancelsFnContext(t *testing.T) {
	k := newTestKernel(t)

	canceled := make(chan error, 1)
	started := make(chan struct{})
	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		v, _ := ctx.Yield(Async(func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			canceled <- ctx.Err()
			return nil, ctx.Err()
		}))
		return v, nil
	}))
	require.NoError(t, err)
	s.SetPrimaryListener(FuncListener{})

	k.Run()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for async op to start")
	}
	require.Equal(t, StateSuspendedInactive, s.State())

	s.Terminate()
	require.True(t, s.HasExited())

	select {
	case e := <-canceled:
		require.ErrorIs(t, e, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for fn's context to be canceled")
	}
}

func TestAsyncOp_WithPoolReusesSinglePermit(t *testing.T) {
	var created int
	pool := asyncpool.NewFixed(1, func() interface{} {
		created++
		return created
	})
	op := Async(func(ctx context.Context) (any, error) { return nil, nil }).WithPool(pool)

	k := newTestKernel(t)
	done := make(chan struct{})
	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		_, _ = ctx.Yield(op)
		return nil, nil
	}))
	require.NoError(t, err)
	s.SetPrimaryListener(FuncListener{OnSend: func(v any, _ *Strand) { close(done) }})

	k.Run()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for pooled async op")
	}
	require.Equal(t, 1, created, "a fixed pool of size 1 must reuse its single permit")
}
