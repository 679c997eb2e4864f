package strand

import (
	"time"

	"github.com/guoyu07/strand/metrics"
)

// instrumentation wraps the metrics instruments a Kernel hands to each
// Strand it creates. A nil *instrumentation is valid and makes every
// method here a no-op, so strands created without a kernel-provided
// recorder pay nothing for instrumentation.
type instrumentation struct {
	active     metrics.UpDownCounter
	steps      metrics.Counter
	stepTime   metrics.Histogram
	exits      metrics.Counter
	terminated metrics.Counter
}

func newInstrumentation(p metrics.Provider) *instrumentation {
	if p == nil {
		p = metrics.NewNoopProvider()
	}
	return &instrumentation{
		active:     p.UpDownCounter("strands_active", metrics.WithDescription("strands currently live"), metrics.WithUnit("1")),
		steps:      p.Counter("strand_steps_total", metrics.WithDescription("start() interpreter iterations"), metrics.WithUnit("1")),
		stepTime:   p.Histogram("strand_step_duration_seconds", metrics.WithDescription("time spent per start() interpreter iteration"), metrics.WithUnit("s")),
		exits:      p.Counter("strand_exits_total", metrics.WithDescription("strands that reached EXITED"), metrics.WithUnit("1")),
		terminated: p.Counter("strand_terminations_total", metrics.WithDescription("strands terminated via terminate()"), metrics.WithUnit("1")),
	}
}

func (i *instrumentation) spawned() {
	if i == nil {
		return
	}
	i.active.Add(1)
}

func (i *instrumentation) step(fn func()) {
	if i == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	i.steps.Add(1)
	i.stepTime.Record(time.Since(start).Seconds())
}

func (i *instrumentation) exited() {
	if i == nil {
		return
	}
	i.active.Add(-1)
	i.exits.Add(1)
}

func (i *instrumentation) wasTerminated() {
	if i == nil {
		return
	}
	i.terminated.Add(1)
}
