package strand

// CoroutineTrace identifies the coroutine at the top of a frame's stack
// (function name, source location). Yielding one attaches the
// annotation to the current frame and transparently resumes execution
// (spec section 4.4): the engine behaves as if the coroutine had sent
// nil to itself.
type CoroutineTrace struct {
	FuncName string
	File     string
	Line     int
}

// YieldTrace identifies the call site of the *next* yield. Yielding one
// attaches the annotation to the current frame and re-enters dispatch
// using Inner as if the trace record had not been present.
type YieldTrace struct {
	FuncName string
	File     string
	Line     int
	Inner    any
}

// frameTrace accumulates trace annotations for one strand, across all
// of its frames (records are not attached to individual frames). Folding is a
// no-op append; rendering (diagnostic-only, per spec section 1/9) is
// left to callers via Annotations().
type frameTrace struct {
	coroutines []CoroutineTrace
	yields     []YieldTrace
}

func (t *frameTrace) foldCoroutine(c CoroutineTrace) {
	if t == nil {
		return
	}
	t.coroutines = append(t.coroutines, c)
}

func (t *frameTrace) foldYield(y YieldTrace) {
	if t == nil {
		return
	}
	t.yields = append(t.yields, y)
}

// Annotations is a point-in-time snapshot of the trace records folded
// into a strand. Purely informational; never used to alter control flow
// beyond the fold-and-loop behavior in Strand.handleYield.
type Annotations struct {
	Coroutines []CoroutineTrace
	Yields     []YieldTrace
}

func (t *frameTrace) snapshot() Annotations {
	if t == nil {
		return Annotations{}
	}
	return Annotations{Coroutines: append([]CoroutineTrace(nil), t.coroutines...), Yields: append([]YieldTrace(nil), t.yields...)}
}
