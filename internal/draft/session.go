package draft

import "sync"

// Session holds the most recently published snapshot. Only the Updater writes to it.
type Session struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Publish replaces the current snapshot in one step.
func (s *Session) Publish(snap Snapshot) {
	cp := snap.Clone()
	s.mu.Lock()
	s.snap = &cp
	s.mu.Unlock()
}

// Snapshot returns a copy of the current snapshot and whether one has been published.
func (s *Session) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, false
	}
	return s.snap.Clone(), true
}
