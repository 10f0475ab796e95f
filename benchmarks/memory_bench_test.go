// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/comalice/eventx"
)

func BenchmarkMemoryFootprint(b *testing.B) {
	numEvents := 1000
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	events := make([]*eventx.Event[int], numEvents)
	for i := 0; i < numEvents; i++ {
		events[i] = eventx.New[int]()
	}
	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	bytesPerEvent := (after.TotalAlloc - before.TotalAlloc) / uint64(numEvents)
	b.ReportMetric(float64(bytesPerEvent), "B/event")
	_ = events
}

func BenchmarkMemoryListeners(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		n := n
		b.Run(fmt.Sprintf("listeners=%d", n), func(b *testing.B) {
			numEvents := 100
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			events := make([]*eventx.Event[int], numEvents)
			for i := 0; i < numEvents; i++ {
				events[i] = GenEvent(n/2, n/2)
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerEvent := (after.TotalAlloc - before.TotalAlloc) / uint64(numEvents)
			bytesPerListener := bytesPerEvent / uint64(n)
			b.ReportMetric(float64(bytesPerEvent)/1024, "KB/event")
			b.ReportMetric(float64(bytesPerListener), "B/listener")
			_ = events
		})
	}
}
