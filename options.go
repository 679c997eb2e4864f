package strand

import (
	"fmt"

	"github.com/guoyu07/strand/metrics"
)

// Option configures a Kernel. Use NewKernelOptions(opts...) to construct
// one via options, mirroring the teacher's functional-options layer
// atop its Config-first constructor.
type Option func(*Config)

// WithAPI wires the default Api every spawned strand dispatches yields
// through, unless overridden via SpawnWithAPI.
func WithAPI(api Api) Option {
	return func(cfg *Config) { cfg.API = api }
}

// WithMetricsProvider wires a metrics.Provider into every strand the
// kernel creates.
func WithMetricsProvider(p metrics.Provider) Option {
	return func(cfg *Config) { cfg.MetricsProvider = p }
}

// WithDiagnostics enables trace annotation folding (spec section 4.4).
func WithDiagnostics() Option {
	return func(cfg *Config) { cfg.Diagnostics = true }
}

// WithHaltOnFailure stops the kernel from starting newly queued strands
// once a failure has been recorded.
func WithHaltOnFailure() Option {
	return func(cfg *Config) { cfg.HaltOnFailure = true }
}

// WithFailuresBuffer sets the size of the Failures() channel.
func WithFailuresBuffer(size uint) Option {
	return func(cfg *Config) { cfg.FailuresBufferSize = size }
}

// WithIntakeBuffer sets the size of the newly-spawned-strand queue.
func WithIntakeBuffer(size uint) Option {
	return func(cfg *Config) { cfg.IntakeBufferSize = size }
}

// WithFixedAsyncPool selects a fixed-size pool of capacity n (n must be
// > 0) for AsyncOp's off-loop blocking calls.
func WithFixedAsyncPool(n uint) Option {
	return func(cfg *Config) {
		if n == 0 {
			panic("strand: WithFixedAsyncPool requires n > 0")
		}
		cfg.AsyncPoolSize = n
	}
}

// WithDynamicAsyncPool selects a dynamically grown pool (the default)
// for AsyncOp's off-loop blocking calls.
func WithDynamicAsyncPool() Option {
	return func(cfg *Config) { cfg.AsyncPoolSize = 0 }
}

// NewKernelOptions builds a Kernel from functional options, the same
// shape as the teacher's NewOptions.
func NewKernelOptions(opts ...Option) (*DefaultKernel, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("strand: invalid kernel options: %w", err)
	}
	return NewKernel(&cfg)
}
