// Package pick provides small helpers for random selection from slices,
// useful for fanning work out to listeners in a non-deterministic order.
package pick

import "math/rand"

// Shuffle permutes s in place.
func Shuffle[T any](s []T) {
	rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// Shuffled returns a shuffled copy of s, leaving s untouched.
func Shuffled[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	Shuffle(out)
	return out
}

// One picks a uniformly random element of s. The second return is false
// when s is empty.
func One[T any](s []T) (T, bool) {
	var zero T
	if len(s) == 0 {
		return zero, false
	}
	return s[rand.Intn(len(s))], true
}

// N picks n elements of s from distinct positions, in random order. When n
// exceeds len(s) every element is returned once, shuffled. A non-positive
// n returns nil.
func N[T any](s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if n > len(s) {
		n = len(s)
	}
	out := make([]T, n)
	for i, j := range rand.Perm(len(s))[:n] {
		out[i] = s[j]
	}
	return out
}
