package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits   int
	misses int
}

// Recorder captures lightweight, in-memory metrics about feed fetches, cache lookups and
// update cycles, mirroring them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	endpoints map[string]*endpointStats
	caches    map[string]*cacheStats
	cycles    int
	failures  int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		endpoints: make(map[string]*endpointStats),
		caches:    make(map[string]*cacheStats),
		otel:      otel,
	}
}

// RecordFetch increments counters for an upstream feed request and stores the last latency.
func (r *Recorder) RecordFetch(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.endpointLocked(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that an endpoint answered 429 and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.endpointLocked(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordCacheLookup counts a cache hit or miss for a resource kind.
func (r *Recorder) RecordCacheLookup(kind string, hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.caches[kind]
	if !ok {
		stats = &cacheStats{}
		r.caches[kind] = stats
	}
	if hit {
		stats.hits++
	} else {
		stats.misses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(kind, hit)
	}
}

// RecordUpdateCycle tracks a completed (or failed) draft update cycle.
func (r *Recorder) RecordUpdateCycle(mode string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.cycles++
	if err != nil {
		r.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCycle(mode, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current stats for one endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the current stats for the endpoint.
func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.endpoints[endpoint]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// FetchCalls returns the total requests recorded for an endpoint.
func (r *Recorder) FetchCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// FetchErrors returns the failed requests recorded for an endpoint.
func (r *Recorder) FetchErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// CacheHits returns hit and miss counts for a resource kind.
func (r *Recorder) CacheHits(kind string) (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.caches[kind]; ok {
		return stats.hits, stats.misses
	}
	return 0, 0
}

// UpdateCycles returns the number of update cycles and how many of them failed.
func (r *Recorder) UpdateCycles() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles, r.failures
}

func (r *Recorder) endpointLocked(endpoint string) *endpointStats {
	stats, ok := r.endpoints[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.endpoints[endpoint] = stats
	}
	return stats
}
