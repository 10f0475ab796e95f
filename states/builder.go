package states

import (
	"fmt"

	"github.com/comalice/eventx/cond"
)

// Builder provides a fluent API for constructing a Switch without going
// through a Config. States may be referenced before they are declared;
// Build validates the whole picture at the end.
type Builder[S comparable] struct {
	initial  S
	order    []S
	declared map[S]bool
	requires map[S][]cond.Condition
	allowed  map[S][]S
}

// StateBuilder provides fluent methods for configuring an individual state.
type StateBuilder[S comparable] struct {
	b *Builder[S]
	s S
}

// NewBuilder starts a builder whose switch begins in initial.
func NewBuilder[S comparable](initial S) *Builder[S] {
	b := &Builder[S]{
		initial:  initial,
		declared: make(map[S]bool),
		requires: make(map[S][]cond.Condition),
		allowed:  make(map[S][]S),
	}
	b.declare(initial)
	return b
}

func (b *Builder[S]) declare(s S) {
	if !b.declared[s] {
		b.declared[s] = true
		b.order = append(b.order, s)
	}
}

// State declares s (if new) and returns its fluent configurator. Declaring
// the same state twice returns a configurator for the same state.
func (b *Builder[S]) State(s S) *StateBuilder[S] {
	b.declare(s)
	return &StateBuilder[S]{b: b, s: s}
}

// Build validates the configuration and constructs the Switch. It fails if
// any Allow target was never declared through State.
func (b *Builder[S]) Build() (*Switch[S], error) {
	for _, from := range b.order {
		for _, to := range b.allowed[from] {
			if !b.declared[to] {
				return nil, fmt.Errorf("state %v allows transition to undeclared state %v", from, to)
			}
		}
	}

	sw := New(b.initial, b.order...)
	for _, s := range b.order {
		if conds := b.requires[s]; len(conds) > 0 {
			if err := sw.Require(s, conds...); err != nil {
				return nil, err
			}
		}
		if targets := b.allowed[s]; len(targets) > 0 {
			if err := sw.Allow(s, targets...); err != nil {
				return nil, err
			}
		}
	}
	return sw, nil
}

// Require attaches entry conditions to this state.
func (sb *StateBuilder[S]) Require(conds ...cond.Condition) *StateBuilder[S] {
	sb.b.requires[sb.s] = append(sb.b.requires[sb.s], conds...)
	return sb
}

// Allow restricts this state's outgoing transitions to the listed targets.
// Targets may be declared later; Build checks they eventually are.
func (sb *StateBuilder[S]) Allow(to ...S) *StateBuilder[S] {
	sb.b.allowed[sb.s] = append(sb.b.allowed[sb.s], to...)
	return sb
}

// State hops back to the enclosing builder, declaring the next state. It
// lets call chains flow: b.State(a).Allow(b1).State(b1).Require(c).
func (sb *StateBuilder[S]) State(s S) *StateBuilder[S] {
	return sb.b.State(s)
}

// Build finishes the enclosing builder.
func (sb *StateBuilder[S]) Build() (*Switch[S], error) {
	return sb.b.Build()
}
