// Package asyncpool supplies the permits AsyncOp takes for the off-loop
// blocking calls it bridges back onto a strand (see the parent package's
// asyncop.go). It is adapted from the teacher's worker pool, generalized
// from reusable *worker objects to reusable permits. Neither pool blocks
// in Get, so neither limits how many calls run at once.
package asyncpool

// Pool hands out and reclaims permits for concurrently running
// blocking calls.
type Pool interface {
	// Get returns a permit, reusing a previously returned one when
	// available.
	Get() interface{}

	// Put returns a permit to the pool.
	Put(interface{})
}
