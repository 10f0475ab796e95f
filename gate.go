package eventx

import (
	"context"
	"sync"
	"sync/atomic"
)

// Gate is a non-reentrant mutual-exclusion lock for code that must not hold a
// goroutine hostage while waiting: a blocked Acquire parks on a channel until
// the holder releases or the context is cancelled.
//
// Unlike sync.Mutex, Acquire hands back a release closure instead of pairing
// with a package-level Unlock. The closure restores the gate exactly once;
// calling it a second time panics, the same class of misuse as unlocking an
// unlocked mutex. Acquire from a goroutine that already holds the gate
// deadlocks: reentrancy is not detected.
//
// The zero value is ready to use.
type Gate struct {
	once   sync.Once
	permit chan struct{}
}

func (g *Gate) init() {
	g.once.Do(func() {
		g.permit = make(chan struct{}, 1)
	})
}

// Acquire takes the gate, waiting if another holder has it. It returns a
// release closure that must be called exactly once, on every exit path:
//
//	release, err := g.Acquire(ctx)
//	if err != nil {
//		return err
//	}
//	defer release()
//
// A free gate is taken synchronously. When the gate is busy, Acquire blocks
// until it is released or ctx is done, in which case the returned error is
// ctx.Err() and the gate is untouched.
//
// Waiters are woken in roughly arrival order but no strict FIFO guarantee is
// made; a TryAcquire can barge ahead of parked waiters.
func (g *Gate) Acquire(ctx context.Context) (release func(), err error) {
	g.init()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case g.permit <- struct{}{}:
		return g.releaser(), nil
	default:
	}
	select {
	case g.permit <- struct{}{}:
		return g.releaser(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryAcquire takes the gate only if it is free, without blocking. The second
// return reports whether the gate was taken; the release closure is nil when
// it was not.
func (g *Gate) TryAcquire() (release func(), ok bool) {
	g.init()
	select {
	case g.permit <- struct{}{}:
		return g.releaser(), true
	default:
		return nil, false
	}
}

// releaser mints the one-shot release closure for a successful acquisition.
func (g *Gate) releaser() func() {
	var released atomic.Bool
	return func() {
		if !released.CompareAndSwap(false, true) {
			panic("eventx: gate released twice")
		}
		<-g.permit
	}
}

// Held reports whether some goroutine holds the gate at the instant of the
// call. The answer can be stale by the time the caller looks at it; use it
// for diagnostics, never for synchronization.
func (g *Gate) Held() bool {
	g.init()
	return len(g.permit) == 1
}

// String renders the gate's point-in-time state for fmt operations.
func (g *Gate) String() string {
	if g.Held() {
		return "Gate(held)"
	}
	return "Gate(free)"
}
