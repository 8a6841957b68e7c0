package metrics

import (
	"sync"
	"time"
)

// maxErrorSamples bounds the recent samples kept per error category.
const maxErrorSamples = 10

// Stat summarises one named timing in milliseconds.
type Stat struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type ErrorSample struct {
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorStat struct {
	Count        int64         `json:"count"`
	LastOccurred time.Time     `json:"lastOccurred"`
	Samples      []ErrorSample `json:"samples"`
}

type timing struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

// Registry keeps in-process request timings and error counts. A nil
// *Registry ignores every call.
type Registry struct {
	mu      sync.Mutex
	timings map[string]*timing
	errors  map[string]*ErrorStat
	started time.Time
	now     func() time.Time
}

func New() *Registry {
	return &Registry{
		timings: make(map[string]*timing),
		errors:  make(map[string]*ErrorStat),
		started: time.Now(),
		now:     time.Now,
	}
}

// Record adds one observation of d under name.
func (r *Registry) Record(name string, d time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timings[name]
	if !ok {
		r.timings[name] = &timing{count: 1, total: d, min: d, max: d}
		return
	}
	t.count++
	t.total += d
	if d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// RecordError counts an error under category and keeps the latest samples.
func (r *Registry) RecordError(category, message, path string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	at := r.now().UTC()
	e, ok := r.errors[category]
	if !ok {
		e = &ErrorStat{}
		r.errors[category] = e
	}
	e.Count++
	e.LastOccurred = at
	e.Samples = append(e.Samples, ErrorSample{Message: message, Path: path, Timestamp: at})
	if len(e.Samples) > maxErrorSamples {
		e.Samples = e.Samples[len(e.Samples)-maxErrorSamples:]
	}
}

// Snapshot returns a copy of every timing.
func (r *Registry) Snapshot() map[string]Stat {
	out := make(map[string]Stat)
	if r == nil {
		return out
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, t := range r.timings {
		out[name] = Stat{
			Count:   t.count,
			Average: millis(t.total) / float64(t.count),
			Min:     millis(t.min),
			Max:     millis(t.max),
		}
	}
	return out
}

// Errors returns a copy of the error counts by category.
func (r *Registry) Errors() map[string]ErrorStat {
	out := make(map[string]ErrorStat)
	if r == nil {
		return out
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for cat, e := range r.errors {
		cp := *e
		cp.Samples = append([]ErrorSample(nil), e.Samples...)
		out[cat] = cp
	}
	return out
}

// TotalErrors is the sum of all error counts.
func (r *Registry) TotalErrors() int64 {
	var n int64
	for _, e := range r.Errors() {
		n += e.Count
	}
	return n
}

func (r *Registry) Uptime() time.Duration {
	if r == nil {
		return 0
	}
	return r.now().Sub(r.started)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
