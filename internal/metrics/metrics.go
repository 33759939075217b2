// Package metrics keeps the handful of process-local counters exposed
// on the /metrics endpoint.
package metrics

import (
	"sync"
	"time"
)

type Registry struct {
	mu       sync.Mutex
	started  time.Time
	counters map[string]int64
}

func NewRegistry() *Registry {
	return &Registry{
		started:  time.Now(),
		counters: make(map[string]int64),
	}
}

// Uptime returns how long the registry (and so the process) has been
// alive, truncated to seconds.
func (r *Registry) Uptime() time.Duration {
	return time.Since(r.started).Truncate(time.Second)
}

func (r *Registry) Increment(name string) {
	r.AddTo(name, 1)
}

func (r *Registry) AddTo(name string, n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name] += n
}

func (r *Registry) Get(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[name]
}

// Counter names used by the handlers.
const (
	RequestCount        = "request_count"
	WellRecordCount     = "well_record_count"
	TotalRecordAccessMS = "total_record_access_time_in_milliseconds"
)
