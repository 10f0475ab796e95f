package eventx

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Helper function to count goroutines
func countGoroutines() int {
	return runtime.NumGoroutine()
}

// Helper function to verify no goroutine leak
func verifyNoGoroutineLeak(t *testing.T, baseline int) {
	t.Helper()
	time.Sleep(100 * time.Millisecond) // Allow cleanup
	current := countGoroutines()
	if current > baseline+1 { // Allow 1 extra for test runner
		t.Errorf("goroutine leak: baseline %d, current %d", baseline, current)
	}
}

// TestStormOfRoundsAndMutations hammers one event from many goroutines with a
// mix of every operation and checks nothing deadlocks, races or leaks.
func TestStormOfRoundsAndMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	baseline := countGoroutines()

	ev := New[int]()
	ctx := context.Background()

	var calls atomic.Int64
	handles := make([]Listener[int], 10)
	for i := range handles {
		handles[i] = ListenerFunc(func(ctx context.Context, _ int) error {
			calls.Add(1)
			return nil
		})
	}

	const workers = 8
	const iterations = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				l := handles[(w+i)%len(handles)]
				var err error
				switch i % 5 {
				case 0:
					err = ev.AddSequential(ctx, l)
				case 1:
					err = ev.AddParallel(ctx, l)
				case 2:
					err = ev.Invoke(ctx, i)
				case 3:
					err = ev.Remove(ctx, l)
				default:
					_, _, err = ev.Counts(ctx)
				}
				if err != nil {
					t.Errorf("worker %d op %d: %v", w, i, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	// The storm is over; the gate must be free and the event healthy.
	if ev.gate.Held() {
		t.Error("gate still held after storm")
	}
	if err := ev.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ev.Invoke(ctx, 0); err != nil {
		t.Fatal(err)
	}

	t.Logf("total listener calls: %d", calls.Load())
	verifyNoGoroutineLeak(t, baseline)
}

// TestManyListenersOneRound registers 100 listeners per set and checks a
// single round runs every one of them exactly once.
func TestManyListenersOneRound(t *testing.T) {
	ev := New[int]()
	ctx := context.Background()

	const perSet = 100
	var calls atomic.Int32
	for i := 0; i < perSet; i++ {
		l := ListenerFunc(func(ctx context.Context, _ int) error {
			calls.Add(1)
			return nil
		})
		if err := ev.AddSequential(ctx, l); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < perSet; i++ {
		l := ListenerFunc(func(ctx context.Context, _ int) error {
			calls.Add(1)
			return nil
		})
		if err := ev.AddParallel(ctx, l); err != nil {
			t.Fatal(err)
		}
	}

	if err := ev.Invoke(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 2*perSet {
		t.Errorf("calls: got %d, want %d", got, 2*perSet)
	}
}

// TestRoundThroughput drives many rounds through one event and reports the
// rate. No target enforced beyond finishing in time.
func TestRoundThroughput(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	ev := New[int]()
	ctx := context.Background()

	var calls atomic.Int64
	l := ListenerFunc(func(ctx context.Context, _ int) error {
		calls.Add(1)
		return nil
	})
	if err := ev.AddSequential(ctx, l); err != nil {
		t.Fatal(err)
	}
	if err := ev.AddParallel(ctx, ListenerFunc(func(ctx context.Context, _ int) error {
		calls.Add(1)
		return nil
	})); err != nil {
		t.Fatal(err)
	}

	const rounds = 5000
	start := time.Now()
	for i := 0; i < rounds; i++ {
		if err := ev.Invoke(ctx, i); err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if got := calls.Load(); got != 2*rounds {
		t.Errorf("calls: got %d, want %d", got, 2*rounds)
	}
	t.Logf("Throughput: %.0f rounds/second", float64(rounds)/elapsed.Seconds())
}
