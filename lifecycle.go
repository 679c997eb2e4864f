package strand

import "sync"

// kernelLifecycle encapsulates a Kernel's shutdown sequence (grounded
// on the teacher's lifecycleCoordinator): it doesn't own the intake
// queue or the failures channel, it orchestrates terminating live
// strands and closing the outward channel in a deterministic order.
// Close is safe for concurrent calls; the sequence runs exactly once.
type kernelLifecycle struct {
	terminateAll func()
	closeFailures func()

	once sync.Once
}

func newKernelLifecycle(terminateAll func(), closeFailures func()) *kernelLifecycle {
	return &kernelLifecycle{terminateAll: terminateAll, closeFailures: closeFailures}
}

// Close executes the shutdown sequence exactly once:
// 1) terminate every strand still tracked by the kernel
// 2) close the outward failures channel
func (lc *kernelLifecycle) Close() {
	lc.once.Do(func() {
		if lc.terminateAll != nil {
			lc.terminateAll()
		}
		if lc.closeFailures != nil {
			lc.closeFailures()
		}
	})
}
