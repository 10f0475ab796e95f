// Package operation wraps a background function in lifecycle events:
// started, progress, completed, failed. Subscribers attach to the lifecycle
// events before the operation starts; the operation invokes a full event
// round for each lifecycle step, so every subscriber has been notified
// before the operation moves on.
package operation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/comalice/eventx"
)

// ErrAlreadyStarted is returned by Start when the operation has already run.
var ErrAlreadyStarted = errors.New("operation already started")

// Func is the body of an operation. It receives the Start context and a
// report callback for publishing progress updates.
type Func[P any] func(ctx context.Context, report Report[P]) error

// Report delivers one progress update to subscribers. It returns the
// aggregate error of the progress round; the body decides whether a
// listener failure aborts the work.
type Report[P any] func(ctx context.Context, p P) error

// Operation runs a function once in the background and publishes its
// lifecycle. P is the progress payload type.
//
// The zero value is not usable; construct with New so subscribers can
// attach before anything fires.
type Operation[P any] struct {
	started   *eventx.Event[struct{}]
	progress  *eventx.Event[P]
	completed *eventx.Event[struct{}]
	failed    *eventx.Event[error]

	mu      sync.Mutex
	running bool

	done chan struct{}
	err  error
}

// New creates an idle operation. opts configure all four lifecycle events.
func New[P any](opts ...eventx.Option) *Operation[P] {
	return &Operation[P]{
		started:   eventx.New[struct{}](opts...),
		progress:  eventx.New[P](opts...),
		completed: eventx.New[struct{}](opts...),
		failed:    eventx.New[error](opts...),
		done:      make(chan struct{}),
	}
}

// Started is the subscriber view of the round fired before the body runs.
func (o *Operation[P]) Started() eventx.Subscriber[struct{}] { return o.started }

// Progress is the subscriber view of the rounds fired by the body's report
// callback.
func (o *Operation[P]) Progress() eventx.Subscriber[P] { return o.progress }

// Completed is the subscriber view of the round fired when the body
// returns nil.
func (o *Operation[P]) Completed() eventx.Subscriber[struct{}] { return o.completed }

// Failed is the subscriber view of the round fired when the body returns an
// error or panics. The payload is the body's error.
func (o *Operation[P]) Failed() eventx.Subscriber[error] { return o.failed }

// Start fires the started round, then runs fn on a new goroutine. It
// returns ErrAlreadyStarted on every call after the first; an operation
// runs at most once. When Start returns nil, all started listeners have
// completed their round.
//
// Errors from the started round do not prevent the body from running; they
// surface in the result reported by Wait and Err.
func (o *Operation[P]) Start(ctx context.Context, fn Func[P]) error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return ErrAlreadyStarted
	}
	o.running = true
	o.mu.Unlock()

	startErr := o.started.Invoke(ctx, struct{}{})
	go o.run(ctx, fn, startErr)
	return nil
}

func (o *Operation[P]) run(ctx context.Context, fn Func[P], startErr error) {
	bodyErr := o.invokeBody(ctx, fn)

	// Terminal listeners still run when the body's context has been
	// cancelled; cancellation is often exactly what they need to hear about.
	tctx := context.WithoutCancel(ctx)
	var termErr error
	if bodyErr != nil {
		termErr = o.failed.Invoke(tctx, bodyErr)
	} else {
		termErr = o.completed.Invoke(tctx, struct{}{})
	}

	o.err = errors.Join(bodyErr, startErr, termErr)
	close(o.done)
}

func (o *Operation[P]) invokeBody(ctx context.Context, fn Func[P]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation body panicked: %v", r)
		}
	}()
	return fn(ctx, o.report)
}

func (o *Operation[P]) report(ctx context.Context, p P) error {
	return o.progress.Invoke(ctx, p)
}

// Wait blocks until the operation finishes or ctx is cancelled. On
// completion it returns the operation's result: the body's error joined
// with any listener round errors from the started and terminal rounds.
func (o *Operation[P]) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the operation finishes.
func (o *Operation[P]) Done() <-chan struct{} {
	return o.done
}

// Err returns the operation's result without blocking. It returns nil
// until the operation finishes.
func (o *Operation[P]) Err() error {
	select {
	case <-o.done:
		return o.err
	default:
		return nil
	}
}
