package strand

import "github.com/guoyu07/strand/metrics"

// Config holds Kernel configuration (spec section 2, Kernel). The zero
// value is not meaningful on its own; use defaultConfig() as the base,
// the same way the teacher package layers Config atop defaultConfig().
type Config struct {
	// API is the event-loop-backed collaborator handed to every strand
	// this kernel spawns, unless overridden per-strand via SpawnWithAPI
	// (spec section 1, section 6). A nil API means a strand that yields
	// an ApiCall or an unrecognized value panics at dispatch time;
	// Awaitable values (including AsyncOp and another *Strand) receive
	// the nil Api and work unless they use it themselves.
	// Default: nil
	API Api

	// MetricsProvider receives the instruments every strand this kernel
	// creates reports to. Nil selects metrics.NewNoopProvider().
	// Default: nil (noop)
	MetricsProvider metrics.Provider

	// Diagnostics enables folding CoroutineTrace/YieldTrace annotations
	// into each strand's trace snapshot (spec section 4.4). Leaving it
	// off skips the folding work entirely.
	// Default: false
	Diagnostics bool

	// HaltOnFailure stops Run from starting newly queued strands once a
	// StrandFailedException or StrandListenerException has been
	// recorded, the same way the
	// teacher's StopOnError halts dispatch on the first task error.
	// Default: false
	HaltOnFailure bool

	// FailuresBufferSize sizes the Failures() channel.
	// Default: 1024
	FailuresBufferSize uint

	// IntakeBufferSize sizes the newly-spawned-strand queue Spawn feeds
	// and Run drains.
	// Default: 64
	IntakeBufferSize uint

	// AsyncPoolSize sets how many distinct permits the fixed pool that
	// AsyncOp takes a permit from creates. The fixed pool never blocks:
	// once that many permits exist it hands out existing ones again, so
	// it does not limit how many AsyncOp calls run at once. Zero selects
	// a dynamic pool (grown on demand, matching the teacher's
	// MaxWorkers == 0 default).
	// Default: 0 (dynamic pool)
	AsyncPoolSize uint
}

// defaultConfig centralizes Config defaults. Applied by both NewKernel
// (when cfg is nil) and NewKernelOptions (options builder base).
func defaultConfig() Config {
	return Config{
		MetricsProvider:    nil,
		Diagnostics:        false,
		HaltOnFailure:      false,
		FailuresBufferSize: 1024,
		IntakeBufferSize:   64,
		AsyncPoolSize:      0,
	}
}

// validateConfig performs lightweight invariant checks, reserved for
// future expansion the same way the teacher's validateConfig is.
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return ErrInvalidConfig
	}
	return nil
}
