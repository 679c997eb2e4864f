package asyncpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamic_GetNeverReturnsNil(t *testing.T) {
	p := NewDynamic(func() interface{} { return "permit" })
	require.Equal(t, "permit", p.Get())
}

func TestDynamic_PutThenGetCanReuseValue(t *testing.T) {
	calls := 0
	p := NewDynamic(func() interface{} {
		calls++
		return calls
	})

	v := p.Get()
	p.Put(v)
	// sync.Pool reuse isn't guaranteed, but Get must still return a usable permit.
	got := p.Get()
	require.NotNil(t, got)
}
