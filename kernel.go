package strand

import (
	"sync"

	"github.com/guoyu07/strand/asyncpool"
)

// Kernel is a strand factory, id allocator, and default listener (spec
// section 2). It is also the default primary listener every Strand it
// creates starts with, so strands that never install a custom listener
// still have their terminal result observed.
type Kernel interface {
	Listener

	// Spawn creates and registers a new strand from entryPoint, using the
	// kernel's configured default Api, and queues it on the intake queue
	// for the next Run call to start.
	Spawn(entryPoint any) (*Strand, error)

	// SpawnWithAPI is Spawn with a per-strand Api override.
	SpawnWithAPI(entryPoint any, api Api) (*Strand, error)

	// Strand looks up a still-registered strand by id.
	Strand(id int) (*Strand, bool)

	// Run drains the intake queue, starting every strand queued so far
	// (including ones spawned by strands started during this call), and
	// returns once the queue is empty and no strand is runnable.
	Run()

	// Failures streams StrandFailedException and StrandListenerException
	// values surfaced while exiting strands.
	Failures() <-chan error

	// Close terminates every strand still registered and closes Failures.
	Close()

	onListenerFailure(err *StrandListenerException)
}

// DefaultKernel is the reference Kernel implementation (spec section 2).
type DefaultKernel struct {
	cfg Config

	mu      sync.Mutex
	nextID  int
	strands map[int]*Strand

	intake    *intakeQueue
	failures  *failureSink
	lifecycle *kernelLifecycle
	instr     *instrumentation
	asyncPool asyncpool.Pool
}

// NewKernel constructs a DefaultKernel. A nil cfg selects defaultConfig().
func NewKernel(cfg *Config) (*DefaultKernel, error) {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	newPermit := func() interface{} { return struct{}{} }
	var pool asyncpool.Pool
	if c.AsyncPoolSize > 0 {
		pool = asyncpool.NewFixed(c.AsyncPoolSize, newPermit)
	} else {
		pool = asyncpool.NewDynamic(newPermit)
	}

	k := &DefaultKernel{
		cfg:       c,
		strands:   make(map[int]*Strand),
		intake:    newIntakeQueue(c.IntakeBufferSize),
		failures:  newFailureSink(c.FailuresBufferSize, c.HaltOnFailure),
		instr:     newInstrumentation(c.MetricsProvider),
		asyncPool: pool,
	}
	k.lifecycle = newKernelLifecycle(k.terminateAll, k.closeFailures)
	return k, nil
}

// Spawn implements Kernel.
func (k *DefaultKernel) Spawn(entryPoint any) (*Strand, error) {
	return k.SpawnWithAPI(entryPoint, k.cfg.API)
}

// SpawnWithAPI implements Kernel.
func (k *DefaultKernel) SpawnWithAPI(entryPoint any, api Api) (*Strand, error) {
	k.mu.Lock()
	id := k.nextID
	k.nextID++
	k.mu.Unlock()

	s, err := NewStrand(k, api, id, entryPoint)
	if err != nil {
		return nil, err
	}
	s.instr = k.instr
	s.diagnostics = k.cfg.Diagnostics
	s.asyncPool = k.asyncPool

	k.mu.Lock()
	k.strands[id] = s
	k.mu.Unlock()

	k.instr.spawned()
	k.intake.push(s)
	return s, nil
}

// Strand implements Kernel.
func (k *DefaultKernel) Strand(id int) (*Strand, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.strands[id]
	return s, ok
}

// Run implements Kernel. It is not safe to call Run concurrently from
// multiple goroutines; the single-threaded contract (spec section 5)
// applies to the kernel's own driver loop as much as to strand bodies.
func (k *DefaultKernel) Run() {
	for {
		if k.cfg.HaltOnFailure && k.failures.isHalted() {
			return
		}
		s, ok := k.intake.pop()
		if !ok {
			return
		}
		s.start()
	}
}

// Failures implements Kernel.
func (k *DefaultKernel) Failures() <-chan error { return k.failures.channel() }

// Close implements Kernel.
func (k *DefaultKernel) Close() { k.lifecycle.Close() }

func (k *DefaultKernel) terminateAll() {
	k.mu.Lock()
	snapshot := make([]*Strand, 0, len(k.strands))
	for _, s := range k.strands {
		snapshot = append(snapshot, s)
	}
	k.mu.Unlock()

	for _, s := range snapshot {
		s.Terminate()
	}
}

func (k *DefaultKernel) closeFailures() {
	close(k.failures.out)
}

// send implements Listener: a strand that never installed a custom
// primary listener reaches the kernel here on a successful exit.
func (k *DefaultKernel) send(_ any, s *Strand) {
	k.forget(s)
}

// throw implements Listener: an unhandled error that reached a
// strand's top frame is wrapped as StrandFailedException and reported.
func (k *DefaultKernel) throw(err error, s *Strand) {
	k.failures.report(newStrandFailedException(s.id, err))
	k.forget(s)
}

func (k *DefaultKernel) onListenerFailure(err *StrandListenerException) {
	k.failures.report(err)
}

func (k *DefaultKernel) forget(s *Strand) {
	k.mu.Lock()
	delete(k.strands, s.id)
	k.mu.Unlock()
}
