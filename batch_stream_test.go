package strand

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestExecuteAllOrderedStream_BuffersOutOfOrderCompletions spawns entry
// points whose AsyncOp delays complete in the reverse of submission
// order, proving the streamReorderer buffers early completions rather
// than emitting them as they arrive.
func TestExecuteAllOrderedStream_BuffersOutOfOrderCompletions(t *testing.T) {
	k := newTestKernel(t)

	delays := []time.Duration{60 * time.Millisecond, 30 * time.Millisecond, 0}
	entryPoints := make([]any, len(delays))
	for i, d := range delays {
		i, d := i, d
		entryPoints[i] = Func(func(ctx *Context) (any, error) {
			v, _ := ctx.Yield(Async(func(ctx context.Context) (any, error) {
				time.Sleep(d)
				return i, nil
			}))
			return v, nil
		})
	}

	out := ExecuteAllOrderedStream(k, entryPoints)

	var got []any
	timeout := time.After(2 * time.Second)
	for len(got) < len(entryPoints) {
		select {
		case r, ok := <-out:
			if !ok {
				t.Fatal("channel closed before all results arrived")
			}
			require.NoError(t, r.Err)
			got = append(got, r.Value)
		case <-timeout:
			t.Fatal("timed out waiting for ordered stream results")
		}
	}
	require.Equal(t, []any{0, 1, 2}, got)
}

func TestExecuteAllOrderedStream_EmptyInputClosesImmediately(t *testing.T) {
	k := newTestKernel(t)
	out := ExecuteAllOrderedStream(k, nil)

	_, ok := <-out
	require.False(t, ok)
}
