// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/comalice/eventx"
	"github.com/comalice/eventx/states"
)

// GenEvent creates an event with seq sequential and par parallel no-op
// listeners attached.
func GenEvent(seq, par int) *eventx.Event[int] {
	noop := func(ctx context.Context, v int) error { return nil }
	ctx := context.Background()
	ev := eventx.New[int]()
	for i := 0; i < seq; i++ {
		if err := ev.AddSequential(ctx, eventx.ListenerFunc(noop)); err != nil {
			panic(err)
		}
	}
	for i := 0; i < par; i++ {
		if err := ev.AddParallel(ctx, eventx.ListenerFunc(noop)); err != nil {
			panic(err)
		}
	}
	return ev
}

// GenCountingEvent creates an event whose listeners all increment counter,
// so benchmarks can verify every listener actually ran.
func GenCountingEvent(seq, par int, counter *atomic.Int64) *eventx.Event[int] {
	count := func(ctx context.Context, v int) error {
		counter.Add(1)
		return nil
	}
	ctx := context.Background()
	ev := eventx.New[int]()
	for i := 0; i < seq; i++ {
		if err := ev.AddSequential(ctx, eventx.ListenerFunc(count)); err != nil {
			panic(err)
		}
	}
	for i := 0; i < par; i++ {
		if err := ev.AddParallel(ctx, eventx.ListenerFunc(count)); err != nil {
			panic(err)
		}
	}
	return ev
}

// GenCycleConfig creates a switch config with n states cycling
// s0 -> s1 -> ... -> s0.
func GenCycleConfig(n int) states.Config {
	if n < 2 {
		n = 2
	}
	cfg := states.Config{
		ID:      fmt.Sprintf("cycle_%d", n),
		Initial: "s0",
		States:  make(map[string]states.StateConfig, n),
	}
	for i := 0; i < n; i++ {
		cfg.States[fmt.Sprintf("s%d", i)] = states.StateConfig{
			Allowed: []string{fmt.Sprintf("s%d", (i+1)%n)},
		}
	}
	return cfg
}
