package strand

import (
	"errors"
	"fmt"
)

// Namespace prefixes every sentinel error string in this package, the
// same way the teacher package prefixes its own error strings.
const Namespace = "strand"

var (
	// ErrInvalidConfig is returned when a Kernel's Config fails validation.
	ErrInvalidConfig = errors.New(Namespace + ": invalid kernel configuration")

	// ErrNilOption is raised when a nil Option is passed to NewKernelOptions.
	ErrNilOption = errors.New(Namespace + ": nil kernel option")
)

// StrandError is implemented by every boundary exception type in this
// package except InvalidEntryPoint, which has no strand yet. It exposes the originating strand's id for correlation, the
// same shape the teacher's TaskMetaError exposes a task's id/index.
type StrandError interface {
	error
	Unwrap() error
	StrandID() int
}

// InvalidEntryPoint is returned by NewStrand when a callable entry point
// does not produce a suspendable coroutine (spec section 3, entry-point
// normalization).
type InvalidEntryPoint struct {
	Got any
}

func (e *InvalidEntryPoint) Error() string {
	return fmt.Sprintf("%s: invalid entry point: callable did not return a coroutine (got %T)", Namespace, e.Got)
}

// TerminatedException is the value a terminated strand exits with
// (spec section 4.5). It is injected as the final thrown value; stack
// frames are discarded rather than unwound through.
type TerminatedException struct {
	id int
}

func (e *TerminatedException) Error() string {
	return fmt.Sprintf("%s: strand %d terminated", Namespace, e.id)
}

func (e *TerminatedException) Unwrap() error { return nil }
func (e *TerminatedException) StrandID() int { return e.id }

// PrimaryListenerRemovedException is delivered to a displaced non-kernel
// primary listener (spec section 4.7).
type PrimaryListenerRemovedException struct {
	Previous Listener
	id       int
}

func (e *PrimaryListenerRemovedException) Error() string {
	return fmt.Sprintf("%s: strand %d primary listener replaced", Namespace, e.id)
}

func (e *PrimaryListenerRemovedException) Unwrap() error { return nil }
func (e *PrimaryListenerRemovedException) StrandID() int { return e.id }

// StrandListenerException is reported to the kernel when a listener's
// send/throw itself panics during exit() notification
// (spec section 4.8). Subsequent listeners are not invoked.
type StrandListenerException struct {
	id    int
	cause error
}

func newStrandListenerException(id int, cause error) *StrandListenerException {
	return &StrandListenerException{id: id, cause: cause}
}

func (e *StrandListenerException) Error() string {
	return fmt.Sprintf("%s: strand %d listener failed: %v", Namespace, e.id, e.cause)
}

func (e *StrandListenerException) Unwrap() error { return e.cause }
func (e *StrandListenerException) StrandID() int { return e.id }

// StrandFailedException is the kernel's canonical wrapping of an
// unhandled error that reached a strand's top frame (spec section 6).
type StrandFailedException struct {
	id    int
	cause error
}

func newStrandFailedException(id int, cause error) *StrandFailedException {
	return &StrandFailedException{id: id, cause: cause}
}

func (e *StrandFailedException) Error() string {
	return fmt.Sprintf("%s: strand %d failed: %v", Namespace, e.id, e.cause)
}

func (e *StrandFailedException) Unwrap() error { return e.cause }
func (e *StrandFailedException) StrandID() int { return e.id }

// Format supports %+v (cause included) the same way the teacher's
// taskTaggedError does for TaskMetaError values.
func (e *StrandFailedException) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "strand(id=%d): %+v", e.id, e.cause)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractStrandID returns the id carried by err, if err (or something it
// wraps) implements StrandError.
func ExtractStrandID(err error) (int, bool) {
	var se StrandError
	if errors.As(err, &se) {
		return se.StrandID(), true
	}
	return 0, false
}

// errFromRecover normalizes a recover() result into an error, the same
// way the teacher's worker goroutines convert a panic into a task error.
func errFromRecover(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%s: panic: %v", Namespace, r)
}
