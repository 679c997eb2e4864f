package asyncpool

import "sync"

// NewDynamic is an unbounded pool of permits. It is a thin wrapper
// around sync.Pool (grounded on the teacher's pool.NewDynamic).
func NewDynamic(newFn func() interface{}) Pool {
	return &sync.Pool{New: newFn}
}
