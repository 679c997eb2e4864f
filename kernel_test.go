package strand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKernel_FailuresChannel(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = k.Spawn(Func(func(ctx *Context) (any, error) { return nil, boom }))
	require.NoError(t, err)

	k.Run()

	select {
	case f := <-k.Failures():
		var sfe *StrandFailedException
		require.ErrorAs(t, f, &sfe)
		require.ErrorIs(t, sfe, boom)
	default:
		t.Fatal("expected a failure to be reported")
	}
}

func TestKernel_HaltOnFailureStopsFurtherIntake(t *testing.T) {
	k, err := NewKernelOptions(WithHaltOnFailure())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = k.Spawn(Func(func(ctx *Context) (any, error) { return nil, boom }))
	require.NoError(t, err)

	var ran bool
	_, err = k.Spawn(Func(func(ctx *Context) (any, error) {
		ran = true
		return nil, nil
	}))
	require.NoError(t, err)

	k.Run()
	require.False(t, ran, "second strand must not start once halted")
}

func TestKernel_SpawnAssignsIncreasingIDs(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	s1, err := k.Spawn(Func(func(ctx *Context) (any, error) { return nil, nil }))
	require.NoError(t, err)
	s2, err := k.Spawn(Func(func(ctx *Context) (any, error) { return nil, nil }))
	require.NoError(t, err)

	require.Less(t, s1.ID(), s2.ID())
}

func TestKernel_StrandLookup(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		_, _ = ctx.Yield(Yield("park"))
		return nil, nil
	}))
	require.NoError(t, err)
	s.api = &recordingAPI{onCall: func(st *Strand, name string, args []any) (CoroutineFrame, error) {
		return nil, nil
	}}

	k.Run()

	found, ok := k.Strand(s.ID())
	require.True(t, ok)
	require.Same(t, s, found)
}

func TestKernel_CloseTerminatesLiveStrands(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	var gotErr error
	s, err := k.Spawn(Func(func(ctx *Context) (any, error) {
		_, _ = ctx.Yield(Yield("park"))
		return nil, nil
	}))
	require.NoError(t, err)
	s.api = &recordingAPI{onCall: func(st *Strand, name string, args []any) (CoroutineFrame, error) {
		return nil, nil
	}}
	s.SetPrimaryListener(FuncListener{OnThrow: func(e error, _ *Strand) { gotErr = e }})

	k.Run()
	k.Close()

	require.True(t, s.HasExited())
	var te *TerminatedException
	require.ErrorAs(t, gotErr, &te)
}

func TestNewKernelOptions_NilOption(t *testing.T) {
	_, err := NewKernelOptions(nil)
	require.ErrorIs(t, err, ErrNilOption)
}

func TestNewKernelOptions_ZeroCapacityFixedPoolPanics(t *testing.T) {
	require.Panics(t, func() {
		_, _ = NewKernelOptions(WithFixedAsyncPool(0))
	})
}
