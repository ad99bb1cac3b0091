package draft

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
)

type loadResult struct {
	state State
	picks []Pick
	err   error
	panic bool
}

type fakeSource struct {
	results []loadResult
	calls   int
	prevs   []State
}

func (f *fakeSource) Mode() string { return "fake" }

func (f *fakeSource) Load(_ context.Context, prev State) (State, []Pick, error) {
	f.prevs = append(f.prevs, prev)
	res := f.results[len(f.results)-1]
	if f.calls < len(f.results) {
		res = f.results[f.calls]
	}
	f.calls++
	if res.panic {
		panic("boom")
	}
	return res.state, res.picks, res.err
}

type fakeArchiver struct {
	written []Snapshot
}

func (a *fakeArchiver) WriteSeason(snap Snapshot) error {
	a.written = append(a.written, snap)
	return nil
}

func newTestUpdater(src Source, clock clockwork.Clock, logger *slog.Logger, rec *metrics.Recorder) *Updater {
	return NewUpdater(UpdaterConfig{
		Source:            src,
		Synthesizer:       NewSynthesizer([]int{1, 2, 3}, []string{"KC"}),
		DraftYear:         2026,
		LiveRefresh:       10 * time.Minute,
		ProjectionRefresh: 24 * time.Hour,
		Clock:             clock,
		Logger:            logger,
		Metrics:           rec,
	})
}

func roundOnePicks(player string) []Pick {
	out := make([]Pick, 0, 32)
	for i := 1; i <= 32; i++ {
		out = append(out, Pick{PickNumber: i, Round: 1, RoundPick: i, TeamAbbr: "KC", PlayerName: player})
	}
	return out
}

func TestUpdaterScenarioCompletedDraft(t *testing.T) {
	tracker := NewTracker(clockwork.NewFakeClock())
	state := tracker.FromFeed(&FeedStatus{State: "post", Round: intPtr(7)}, InitialState())
	src := &fakeSource{results: []loadResult{{state: state, picks: roundOnePicks("Player")}}}
	u := newTestUpdater(src, clockwork.NewFakeClock(), nil, nil)

	ran, err := u.Update(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)

	snap, ok := u.Session().Snapshot()
	require.True(t, ok)
	assert.Equal(t, StatusComplete, snap.Status)
	assert.False(t, snap.IsLive)
	assert.Len(t, snap.Picks, 32)
}

func TestUpdaterKeepsSnapshotWhenFeedUnavailable(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	clock := clockwork.NewFakeClock()
	rec := metrics.NewRecorder()
	src := &fakeSource{results: []loadResult{
		{state: State{Status: StatusPre, CurrentRound: 1}, picks: roundOnePicks("Player")},
		{state: State{Status: StatusPre, CurrentRound: 1}, err: ErrFeedUnavailable},
	}}
	u := newTestUpdater(src, clock, logger, rec)

	require.NoError(t, u.Refresh(context.Background()))
	before, _ := u.Session().Snapshot()

	clock.Advance(25 * time.Hour)
	ran, err := u.Update(context.Background())
	assert.True(t, ran)
	assert.ErrorIs(t, err, ErrFeedUnavailable)

	after, ok := u.Session().Snapshot()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Contains(t, buf.String(), "draft feed unavailable")

	total, failed := rec.UpdateCycles()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, failed)
}

func TestUpdaterRecoversFromPanics(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{results: []loadResult{
		{state: State{Status: StatusPre, CurrentRound: 1}, picks: roundOnePicks("Player")},
		{panic: true},
	}}
	u := newTestUpdater(src, clock, nil, nil)
	require.NoError(t, u.Refresh(context.Background()))

	err := u.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	snap, ok := u.Session().Snapshot()
	require.True(t, ok)
	assert.Len(t, snap.Picks, 32)
}

func TestUpdaterWrapsSourceErrors(t *testing.T) {
	src := &fakeSource{results: []loadResult{{err: errors.New("decode failed")}}}
	u := newTestUpdater(src, clockwork.NewFakeClock(), nil, nil)

	err := u.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load fake picks")
	_, ok := u.Session().Snapshot()
	assert.False(t, ok)
}

func TestUpdaterDiscardsCancelledCycle(t *testing.T) {
	src := &fakeSource{results: []loadResult{
		{state: State{Status: StatusSimulate, CurrentRound: 7}, picks: roundOnePicks(PlayerTBD)},
	}}
	archiver := &fakeArchiver{}
	u := newTestUpdater(src, clockwork.NewFakeClock(), nil, nil)
	u.archiver = archiver

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := u.Refresh(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, ok := u.Session().Snapshot()
	assert.False(t, ok)
	assert.Empty(t, archiver.written)

	ran, err := u.Update(context.Background())
	assert.True(t, ran, "a cancelled cycle does not count as fresh")
	assert.NoError(t, err)
}

func TestUpdaterFreshnessGate(t *testing.T) {
	clock := clockwork.NewFakeClock()
	live := State{Status: StatusLive, IsLive: true, CurrentRound: 1}
	src := &fakeSource{results: []loadResult{{state: live, picks: roundOnePicks(PlayerTBD)}}}
	u := newTestUpdater(src, clock, nil, nil)

	ran, err := u.Update(context.Background())
	require.NoError(t, err)
	require.True(t, ran)
	assert.Equal(t, 10*time.Minute, u.RefreshInterval())

	clock.Advance(9 * time.Minute)
	ran, _ = u.Update(context.Background())
	assert.False(t, ran)

	clock.Advance(time.Minute)
	ran, _ = u.Update(context.Background())
	assert.True(t, ran)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, live, src.prevs[1])
}

func TestUpdaterUsesProjectionIntervalWhenNotLive(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{results: []loadResult{{state: State{Status: StatusPre, CurrentRound: 1}, picks: roundOnePicks("X")}}}
	u := newTestUpdater(src, clock, nil, nil)

	_, err := u.Update(context.Background())
	require.NoError(t, err)
	clock.Advance(23 * time.Hour)
	ran, _ := u.Update(context.Background())
	assert.False(t, ran)
	assert.Equal(t, 24*time.Hour, u.RefreshInterval())
}

func TestUpdaterLiveHintFromFallbackDrivesCadence(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &fakeSource{results: []loadResult{{state: State{Status: StatusLive, IsLive: true, CurrentRound: 1}, err: ErrFeedUnavailable}}}
	u := newTestUpdater(src, clock, nil, nil)

	_, err := u.Update(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.Equal(t, 10*time.Minute, u.RefreshInterval())
}

func TestUpdaterArchivesFinishedDrafts(t *testing.T) {
	arch := &fakeArchiver{}
	src := &fakeSource{results: []loadResult{
		{state: Simulated(InitialState()), picks: roundOnePicks("Player")},
	}}
	u := NewUpdater(UpdaterConfig{
		Source:      src,
		Synthesizer: NewSynthesizer([]int{1}, nil),
		DraftYear:   2025,
		Clock:       clockwork.NewFakeClock(),
		Archiver:    arch,
	})

	require.NoError(t, u.Refresh(context.Background()))
	require.Len(t, arch.written, 1)
	assert.Equal(t, StatusSimulate, arch.written[0].Status)
	assert.Equal(t, 2025, arch.written[0].DraftYear)
}

func TestUpdaterWithoutSourceFails(t *testing.T) {
	u := NewUpdater(UpdaterConfig{Clock: clockwork.NewFakeClock()})
	assert.Error(t, u.Refresh(context.Background()))
}
