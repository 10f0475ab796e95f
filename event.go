package eventx

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Listener receives the argument of every invocation round it is registered
// for. Implementations must be comparable: registration, de-duplication and
// removal all use interface equality, which is why Listener is an interface
// rather than a func type (funcs cannot be compared in Go). Pointer receivers
// are the norm and are always safe.
type Listener[T any] interface {
	Handle(ctx context.Context, arg T) error
}

// ListenerFunc adapts fn into a Listener with a fresh identity. Every call
// mints a distinct handle, so registering the same fn through two
// ListenerFunc calls yields two independent listeners. Keep the handle if you
// intend to Remove it later.
func ListenerFunc[T any](fn func(ctx context.Context, arg T) error) Listener[T] {
	return &funcListener[T]{fn: fn}
}

type funcListener[T any] struct {
	fn func(ctx context.Context, arg T) error
}

func (l *funcListener[T]) Handle(ctx context.Context, arg T) error { return l.fn(ctx, arg) }

// Subscriber is the capability view handed to collaborators: it can reshape
// the listener sets but cannot fire rounds or clear the event. *Event[T]
// satisfies it, so owners keep the concrete type and share the interface.
type Subscriber[T any] interface {
	AddSequential(ctx context.Context, l Listener[T]) error
	AddParallel(ctx context.Context, l Listener[T]) error
	Remove(ctx context.Context, l Listener[T]) error
	Counts(ctx context.Context) (sequential, parallel int, err error)
}

// Event is an awaitable multicast event. Listeners live in one of two sets:
// sequential listeners run one at a time in registration order, parallel
// listeners are all launched together and overlap both each other and the
// sequential walk. One invocation round runs both sets to completion before
// anything else touches the event.
//
// Every operation, mutation and invocation alike, passes through a single
// internal Gate. Rounds are therefore totally ordered, and a mutation
// requested while a round is in flight parks until the round finishes, then
// applies before the next one. The flip side is that the gate is not
// reentrant: a listener that calls back into its own event deadlocks the
// round.
//
// The zero value is ready to use; New is only needed to apply options.
type Event[T any] struct {
	gate Gate

	// Guarded by gate. Invoke walks these live, no snapshots: mutations
	// cannot interleave with a round, so none are needed.
	sequential []Listener[T]
	parallel   []Listener[T]

	settings settings
}

// New returns an empty event configured by opts.
func New[T any](opts ...Option) *Event[T] {
	return &Event[T]{settings: newSettings(opts)}
}

// AddSequential registers l in the sequential set. Listeners run in the order
// they were added. Adding a listener already in the set is a no-op; the same
// listener may additionally live in the parallel set, in which case it runs
// twice per round, once under each discipline.
//
// ctx bounds only the wait for the gate. On cancellation the set is
// unchanged and ctx.Err() is returned.
func (e *Event[T]) AddSequential(ctx context.Context, l Listener[T]) error {
	release, err := e.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	if !contains(e.sequential, l) {
		e.sequential = append(e.sequential, l)
	}
	return nil
}

// AddParallel registers l in the parallel set. Listeners in this set are
// launched concurrently at the start of each round, with no ordering among
// them. Adding a listener already in the set is a no-op.
func (e *Event[T]) AddParallel(ctx context.Context, l Listener[T]) error {
	release, err := e.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	if !contains(e.parallel, l) {
		e.parallel = append(e.parallel, l)
	}
	return nil
}

// Remove deletes l from both sets. Removing a listener that is in neither
// set is a no-op. A round already in flight is unaffected; the removal takes
// effect for the next one.
func (e *Event[T]) Remove(ctx context.Context, l Listener[T]) error {
	release, err := e.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	e.sequential = drop(e.sequential, l)
	e.parallel = drop(e.parallel, l)
	return nil
}

// Counts reports the current size of each listener set.
func (e *Event[T]) Counts(ctx context.Context) (sequential, parallel int, err error) {
	release, err := e.gate.Acquire(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer release()
	return len(e.sequential), len(e.parallel), nil
}

// Invoke runs one round with arg and blocks until the round is over.
//
// The round launches every parallel listener first, each on its own
// goroutine, then walks the sequential set in order, waiting for each
// listener before starting the next. A sequential failure stops the walk;
// later sequential listeners do not run that round. Parallel listeners are
// unaffected by failures elsewhere: the round always waits for all of them
// before returning, so the gate is never released with listener work still
// running.
//
// Every listener failure in the round, sequential and parallel alike, is
// collected into the returned error (errors.Join); a panicking listener is
// recovered and reported as its failure. A failed round does not change the
// listener sets, and the next Invoke proceeds normally.
//
// ctx bounds the wait for the gate and is handed through to every listener.
// Listeners are not cancelled by the event itself: one that never returns
// stalls its round, and the gate, indefinitely.
func (e *Event[T]) Invoke(ctx context.Context, arg T) error {
	release, err := e.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()

	// Parallel group first; results are drained after the sequential walk.
	launched := len(e.parallel)
	results := make(chan error, launched)
	for i, l := range e.parallel {
		go func(i int, l Listener[T]) {
			results <- runListener(ctx, "parallel", i, l, arg)
		}(i, l)
	}

	var failures []error
	for i, l := range e.sequential {
		if err := runListener(ctx, "sequential", i, l, arg); err != nil {
			failures = append(failures, err)
			break
		}
	}

	for i := 0; i < launched; i++ {
		if err := <-results; err != nil {
			failures = append(failures, err)
		}
	}

	err = errors.Join(failures...)
	e.settings.log().Debug("round complete",
		"event", e.settings.name,
		"sequential", len(e.sequential),
		"parallel", launched,
		"duration", time.Since(start),
		"err", err)
	return err
}

// Clear empties both listener sets and waits for the removal to land. Like
// any mutation it queues behind an in-flight round. The event stays usable;
// an Invoke after Clear finds no listeners and returns immediately.
func (e *Event[T]) Clear(ctx context.Context) error {
	release, err := e.gate.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	e.sequential = nil
	e.parallel = nil
	e.settings.log().Debug("cleared", "event", e.settings.name)
	return nil
}

// Stop clears the event without waiting: the clear is scheduled in the
// background and queues behind any in-flight round like every other
// mutation. Use Clear to wait for the sets to actually empty.
func (e *Event[T]) Stop() {
	go func() {
		// Background context: a scheduled clear is never abandoned.
		_ = e.Clear(context.Background())
	}()
}

// runListener executes one listener, converting a panic into that
// listener's failure so siblings finish and the round's gate is released.
func runListener[T any](ctx context.Context, set string, i int, l Listener[T], arg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s listener %d panicked: %v", set, i, r)
		}
	}()
	if err := l.Handle(ctx, arg); err != nil {
		return fmt.Errorf("%s listener %d: %w", set, i, err)
	}
	return nil
}

func contains[T any](ls []Listener[T], l Listener[T]) bool {
	for _, have := range ls {
		if have == l {
			return true
		}
	}
	return false
}

func drop[T any](ls []Listener[T], l Listener[T]) []Listener[T] {
	for i, have := range ls {
		if have == l {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}
