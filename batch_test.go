package strand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteAll_CollectsAllResults(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	entryPoints := []any{
		Func(func(ctx *Context) (any, error) { return 1, nil }),
		Func(func(ctx *Context) (any, error) { return 2, nil }),
		Func(func(ctx *Context) (any, error) { return 3, nil }),
	}

	results, err := ExecuteAll(k, entryPoints)
	require.NoError(t, err)
	require.ElementsMatch(t, []any{1, 2, 3}, results)
}

func TestExecuteAll_AggregatesErrors(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	entryPoints := []any{
		Func(func(ctx *Context) (any, error) { return 1, nil }),
		Func(func(ctx *Context) (any, error) { return nil, boom }),
	}

	results, err := ExecuteAll(k, entryPoints)
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []any{1}, results)
}

func TestExecuteAllOrdered_PreservesInputOrder(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	entryPoints := make([]any, 5)
	for i := 0; i < 5; i++ {
		i := i
		entryPoints[i] = Func(func(ctx *Context) (any, error) { return i, nil })
	}

	results, err := ExecuteAllOrdered(k, entryPoints)
	require.NoError(t, err)
	require.Equal(t, []any{0, 1, 2, 3, 4}, results)
}

func TestExecuteAllOrderedStream_EmitsInOrder(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	entryPoints := make([]any, 4)
	for i := 0; i < 4; i++ {
		i := i
		entryPoints[i] = Func(func(ctx *Context) (any, error) { return i, nil })
	}

	out := ExecuteAllOrderedStream(k, entryPoints)
	var got []any
	for r := range out {
		require.NoError(t, r.Err)
		got = append(got, r.Value)
	}
	require.Equal(t, []any{0, 1, 2, 3}, got)
}

func TestMap_AppliesFnToEachItem(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	results, err := Map(k, []int{1, 2, 3}, func(ctx *Context, item int) (any, error) {
		return item * 2, nil
	})
	require.NoError(t, err)
	require.Equal(t, []any{2, 4, 6}, results)
}

func TestForEach_RunsFnForEveryItem(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	var sum int
	err = ForEach(k, []int{1, 2, 3}, func(ctx *Context, item int) error {
		sum += item
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 6, sum)
}

func TestForEach_EmptySliceIsNoop(t *testing.T) {
	k, err := NewKernel(nil)
	require.NoError(t, err)

	err = ForEach(k, []int{}, func(ctx *Context, item int) error {
		t.Fatal("fn must not be called")
		return nil
	})
	require.NoError(t, err)
}
