// Package states provides a small current-state-among-many switch whose
// transitions are gated by conditions and announced through eventx events.
//
// A Switch holds one current state out of a declared set. Set moves the
// switch to another state if that state's entry conditions hold and the
// transition edge is allowed, then fires the old state's exited event, the
// new state's entered event and the switch-wide changed event, in that
// order. Collaborators see only Subscriber views of those events; the switch
// alone invokes them.
package states

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/comalice/eventx"
	"github.com/comalice/eventx/cond"
)

var (
	// ErrUnknownState reports a state that was never declared on the switch.
	ErrUnknownState = errors.New("unknown state")
	// ErrBlocked reports a transition whose target's entry conditions do not hold.
	ErrBlocked = errors.New("transition blocked by entry conditions")
	// ErrNotAllowed reports a transition edge outside the declared set.
	ErrNotAllowed = errors.New("transition not allowed")
)

// Change describes one transition, delivered to entered, exited and changed
// listeners alike.
type Change[S comparable] struct {
	From S
	To   S
}

type node[S comparable] struct {
	entered  *eventx.Event[Change[S]]
	exited   *eventx.Event[Change[S]]
	requires cond.Set
	allowed  map[S]bool // nil means any target
}

// Switch is a condition-gated state holder. Declare the full state set up
// front with New or through the Builder; the set is fixed afterwards.
//
// Transitions serialize on an internal mutex that is held across the
// transition's event rounds, so listeners must not call back into Set or
// they deadlock.
type Switch[S comparable] struct {
	mu      sync.Mutex
	current S
	states  map[S]*node[S]
	changed *eventx.Event[Change[S]]
}

// New returns a switch over the given states, currently in initial.
// Declaring a state twice is harmless.
func New[S comparable](initial S, rest ...S) *Switch[S] {
	sw := &Switch[S]{
		current: initial,
		states:  make(map[S]*node[S], 1+len(rest)),
		changed: eventx.New[Change[S]](),
	}
	sw.declare(initial)
	for _, s := range rest {
		sw.declare(s)
	}
	return sw
}

func (sw *Switch[S]) declare(s S) {
	if _, ok := sw.states[s]; ok {
		return
	}
	sw.states[s] = &node[S]{
		entered: eventx.New[Change[S]](),
		exited:  eventx.New[Change[S]](),
	}
}

// Current reports the state the switch is in.
func (sw *Switch[S]) Current() S {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.current
}

// Require attaches entry conditions to s: Set refuses to enter s while any
// of them is unfulfilled.
func (sw *Switch[S]) Require(s S, conds ...cond.Condition) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	n, ok := sw.states[s]
	if !ok {
		return fmt.Errorf("state %v: %w", s, ErrUnknownState)
	}
	n.requires.Add(conds...)
	return nil
}

// Allow restricts the transitions leaving from: once called, Set only moves
// from that state to one of the listed targets. States never named in an
// Allow call permit any target.
func (sw *Switch[S]) Allow(from S, to ...S) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	n, ok := sw.states[from]
	if !ok {
		return fmt.Errorf("state %v: %w", from, ErrUnknownState)
	}
	for _, target := range to {
		if _, ok := sw.states[target]; !ok {
			return fmt.Errorf("target %v: %w", target, ErrUnknownState)
		}
	}
	if n.allowed == nil {
		n.allowed = make(map[S]bool, len(to))
	}
	for _, target := range to {
		n.allowed[target] = true
	}
	return nil
}

// Entered returns the subscriber view of s's entered event. Listeners get
// the Change that brought the switch into s.
func (sw *Switch[S]) Entered(s S) (eventx.Subscriber[Change[S]], error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	n, ok := sw.states[s]
	if !ok {
		return nil, fmt.Errorf("state %v: %w", s, ErrUnknownState)
	}
	return n.entered, nil
}

// Exited returns the subscriber view of s's exited event.
func (sw *Switch[S]) Exited(s S) (eventx.Subscriber[Change[S]], error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	n, ok := sw.states[s]
	if !ok {
		return nil, fmt.Errorf("state %v: %w", s, ErrUnknownState)
	}
	return n.exited, nil
}

// Changed returns the subscriber view of the switch-wide transition event,
// fired after the per-state exited and entered events of every transition.
func (sw *Switch[S]) Changed() eventx.Subscriber[Change[S]] {
	return sw.changed
}

// Set moves the switch to next.
//
// The move is refused with ErrUnknownState, ErrNotAllowed or ErrBlocked when
// next was never declared, the edge is outside the allowed set, or next's
// entry conditions do not hold; the current state is then unchanged. Setting
// the state the switch is already in is a no-op.
//
// On a successful move the state flips first, then the exited, entered and
// changed events fire as one round each, exit before entry. Listener
// failures do not undo the move; they are joined into the returned error.
// ctx is handed through to every listener.
func (sw *Switch[S]) Set(ctx context.Context, next S) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	target, ok := sw.states[next]
	if !ok {
		return fmt.Errorf("state %v: %w", next, ErrUnknownState)
	}
	if next == sw.current {
		return nil
	}
	from := sw.current
	origin := sw.states[from]
	if origin.allowed != nil && !origin.allowed[next] {
		return fmt.Errorf("%v -> %v: %w", from, next, ErrNotAllowed)
	}
	if !target.requires.AllFulfilled() {
		return fmt.Errorf("enter %v: %w", next, ErrBlocked)
	}

	sw.current = next
	ch := Change[S]{From: from, To: next}

	var failures []error
	if err := origin.exited.Invoke(ctx, ch); err != nil {
		failures = append(failures, fmt.Errorf("exited %v: %w", from, err))
	}
	if err := target.entered.Invoke(ctx, ch); err != nil {
		failures = append(failures, fmt.Errorf("entered %v: %w", next, err))
	}
	if err := sw.changed.Invoke(ctx, ch); err != nil {
		failures = append(failures, fmt.Errorf("changed: %w", err))
	}
	return errors.Join(failures...)
}
