package status

import (
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
)

// Registry is the telemetry facade shared by the engine and host tools
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, sorted by key
func (r *Registry) Snapshot() []Entry {
	entries := make([]Entry, 0, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		entries = append(entries, Entry{key, strconv.FormatBool(ptr.Load())})
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		entries = append(entries, Entry{key, strconv.FormatInt(ptr.Load(), 10)})
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		entries = append(entries, Entry{key, fmt.Sprintf("%.4g", ptr.Load())})
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}
