// Package cond provides tiny boolean conditions and a flat combinator over
// them, typically used to gate state changes in the states package.
package cond

import "sync"

// Condition is a zero-argument predicate. Fulfilled may be called from any
// goroutine and must not block; implementations guard their own state.
type Condition interface {
	Fulfilled() bool
}

// Func adapts a closure into a Condition.
type Func func() bool

func (f Func) Fulfilled() bool { return f() }

// Flag is a settable thread-safe condition, starting unfulfilled.
type Flag struct {
	mu  sync.RWMutex
	set bool
}

// Set marks the flag fulfilled.
func (f *Flag) Set() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = true
}

// Unset marks the flag unfulfilled.
func (f *Flag) Unset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = false
}

func (f *Flag) Fulfilled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.set
}

// Set is a flat collection of conditions evaluated conjunctively. The zero
// value is an empty set, which is always fulfilled. No de-duplication is
// attempted: adding a condition twice means it is evaluated twice.
type Set struct {
	mu    sync.RWMutex
	conds []Condition
}

// Add appends conditions to the set.
func (s *Set) Add(conds ...Condition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conds = append(s.conds, conds...)
}

// Len reports how many conditions the set holds.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conds)
}

// AllFulfilled reports whether every condition in the set currently holds.
// Evaluation order is registration order, stopping at the first unfulfilled
// condition; callers must not rely on which conditions get evaluated.
func (s *Set) AllFulfilled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.conds {
		if !c.Fulfilled() {
			return false
		}
	}
	return true
}
