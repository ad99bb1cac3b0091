package cache

import "time"

// LongLived is the flat TTL for data that never changes once published.
const LongLived = 24 * time.Hour

const (
	defaultLiveTTL = 600 * time.Second
	defaultIdleTTL = 86400 * time.Second
)

// Policy selects TTLs based on whether the draft is live.
type Policy struct {
	Live time.Duration
	Idle time.Duration
}

// NewPolicy builds a Policy, substituting defaults for non-positive values.
func NewPolicy(live, idle time.Duration) Policy {
	if live <= 0 {
		live = defaultLiveTTL
	}
	if idle <= 0 {
		idle = defaultIdleTTL
	}
	return Policy{Live: live, Idle: idle}
}

// TTL returns the short TTL while live and the long TTL otherwise.
func (p Policy) TTL(live bool) time.Duration {
	if live {
		return p.Live
	}
	return p.Idle
}
