// Package strand implements a cooperative, single-threaded coroutine
// scheduler: Kernel spawns Strand values from plain Go functions,
// CoroutineFrame adapters, or existing coroutine-like types, and drives
// each one forward through yield/dispatch/resume cycles until it exits.
//
// Core types
//   - Kernel: strand factory, id allocator, and default listener.
//   - Strand: one scheduled unit of cooperative execution.
//   - Api: the host's event-loop-backed collaborator for named
//     operations (ApiCall) a coroutine yields.
//   - CoroutineFrame: the low-level resumable-frame contract a strand's
//     current frame satisfies; Func and CoroutineProvider values are
//     normalized into one automatically.
//
// Construction
//   - NewKernel(*Config): accepts a Config directly.
//   - NewKernelOptions(opts ...Option): options-based constructor.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created Kernel:
//   - Diagnostics: false (trace annotations are not folded)
//   - HaltOnFailure: false
//   - FailuresBufferSize: 1024
//   - IntakeBufferSize: 64
//   - AsyncPoolSize: 0 (dynamic pool)
//
// Listener lifecycle
// Every strand starts with the kernel installed as its primary
// listener; SetPrimaryListener/ClearPrimaryListener swap it, and Await
// registers additional secondary listeners. The kernel does not close
// Failures() automatically except via Close, matching the channel
// lifecycle conventions a cooperative scheduler's callers expect to
// manage themselves for any other channel they own.
//
// Bulk helpers
//   - ExecuteAll / ExecuteAllOrdered / ExecuteAllOrderedStream: run many
//     entry points to completion, in completion order, input order, or
//     streamed in input order, respectively.
//   - Map / ForEach: adapt a slice of items into entry points and
//     delegate to the bulk helpers above.
package strand
