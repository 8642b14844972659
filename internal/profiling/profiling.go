package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates wall-clock durations per stage name. A task owns
// one recorder; the zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	order  []string
}

// Stage is one named duration.
type Stage struct {
	Name     string
	Duration time.Duration
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer rec.Track("sweep")()
func (r *Recorder) Track(name string) func() {
	start := time.Now()
	return func() {
		r.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	if r.totals == nil {
		r.totals = make(map[string]time.Duration)
	}
	if _, ok := r.totals[name]; !ok {
		r.order = append(r.order, name)
	}
	r.totals[name] += d
	r.mu.Unlock()
}

// Reset clears all recorded stages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.totals = nil
	r.order = nil
	r.mu.Unlock()
}

// Stages returns the recorded stages in first-recorded order.
func (r *Recorder) Stages() []Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stage, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Stage{Name: name, Duration: r.totals[name]})
	}
	return out
}

// Total returns the sum of all stages.
func (r *Recorder) Total() time.Duration {
	var t time.Duration
	for _, s := range r.Stages() {
		t += s.Duration
	}
	return t
}

// TopN formats the n slowest stages.
// Example: "sweep:4.2ms, tangents:0.3ms"
func (r *Recorder) TopN(n int) string {
	list := r.Stages()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Duration > list[j].Duration })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, s := range list[:n] {
		parts = append(parts, s.Name+":"+FormatMs(s.Duration))
	}
	return strings.Join(parts, ", ")
}

// FormatMs renders d in milliseconds with one decimal, dropping ".0".
func FormatMs(d time.Duration) string {
	tenths := d.Microseconds() / 100
	s := strconv.FormatInt(tenths/10, 10)
	if frac := tenths % 10; frac != 0 {
		if frac < 0 {
			frac = -frac
		}
		s += "." + strconv.FormatInt(frac, 10)
	}
	return s + "ms"
}
