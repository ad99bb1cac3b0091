package draft

import (
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/nfl-draft-service/internal/timeutil"
)

// Draft week window used when the feed cannot tell us whether the draft is live.
const (
	draftWindowMonth    = time.April
	draftWindowStartDay = 20
	draftWindowEndDay   = 27
)

// FeedStatus is the status sub-object of the live feed. Round is nil when the provider
// omitted it or sent something that is not an integer.
type FeedStatus struct {
	State string
	Round *int
}

// State is the tracked lifecycle of the draft.
type State struct {
	Status       Status
	IsLive       bool
	CurrentRound int
}

// InitialState is the state before any cycle has run.
func InitialState() State {
	return State{Status: StatusPre, CurrentRound: 1}
}

// Tracker derives draft state from the live feed, falling back to the calendar.
type Tracker struct {
	clock clockwork.Clock
}

// NewTracker constructs a Tracker. A nil clock uses the real clock.
func NewTracker(clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{clock: clock}
}

// FromFeed maps the feed's status object to a State. A nil status counts as "pre".
// The current round is carried over from prev unless the feed reports one.
func (t *Tracker) FromFeed(status *FeedStatus, prev State) State {
	next := State{Status: StatusPre, CurrentRound: prev.CurrentRound}
	if next.CurrentRound <= 0 {
		next.CurrentRound = 1
	}
	if status == nil {
		return next
	}

	switch strings.ToLower(strings.TrimSpace(status.State)) {
	case "in":
		next.Status = StatusLive
		next.IsLive = true
	case "post":
		next.Status = StatusComplete
	}
	if status.Round != nil && *status.Round > 0 {
		next.CurrentRound = *status.Round
	}
	return next
}

// Fallback derives state when the feed is entirely unavailable: live during the draft-week
// window of draftYear, otherwise pre.
func (t *Tracker) Fallback(draftYear int, prev State) State {
	next := State{Status: StatusPre, CurrentRound: prev.CurrentRound}
	if next.CurrentRound <= 0 {
		next.CurrentRound = 1
	}
	if t.InDraftWindow(draftYear) {
		next.Status = StatusLive
		next.IsLive = true
	}
	return next
}

// InDraftWindow reports whether now falls within April 20-27 (inclusive) of draftYear.
func (t *Tracker) InDraftWindow(draftYear int) bool {
	now := t.clock.Now()
	start, end := timeutil.DayRange(draftYear, draftWindowMonth, draftWindowStartDay, draftWindowEndDay, now.Location())
	return timeutil.Within(now, start, end)
}

// Simulated is the fixed state used when replaying a completed historical draft.
func Simulated(prev State) State {
	round := prev.CurrentRound
	if round <= 0 {
		round = 1
	}
	return State{Status: StatusSimulate, CurrentRound: round}
}
