// Package benchmarks provides performance benchmarks for round throughput
// under contention.
package benchmarks

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func BenchmarkContendedRounds(b *testing.B) {
	var processed atomic.Int64
	const seq, par = 2, 2
	ev := GenCountingEvent(seq, par, &processed)
	ctx := context.Background()

	numWorkers := 8
	roundsPerWorker := b.N / numWorkers
	if roundsPerWorker == 0 {
		roundsPerWorker = 1
	}
	totalRounds := int64(numWorkers * roundsPerWorker)

	var wg sync.WaitGroup
	b.ResetTimer()
	b.ReportAllocs()
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < roundsPerWorker; i++ {
				if err := ev.Invoke(ctx, i); err != nil {
					b.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	b.StopTimer()

	// Rounds are synchronous, so every listener has run by now.
	want := totalRounds * (seq + par)
	if got := processed.Load(); got != want {
		b.Fatalf("processed %d listener calls, want %d", got, want)
	}
	b.ReportMetric(float64(totalRounds)/b.Elapsed().Seconds(), "rounds/sec")
}

func BenchmarkUncontendedRounds(b *testing.B) {
	var processed atomic.Int64
	ev := GenCountingEvent(2, 2, &processed)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ev.Invoke(ctx, i); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "rounds/sec")
}
