package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
)

// Source loads one cycle's worth of normalized picks for a mode.
// On ErrFeedUnavailable the returned State is still used as a liveness hint.
type Source interface {
	Mode() string
	Load(ctx context.Context, prev State) (State, []Pick, error)
}

// Archiver stores finished snapshots outside the session.
type Archiver interface {
	WriteSeason(snap Snapshot) error
}

// UpdaterConfig wires an Updater.
type UpdaterConfig struct {
	Source            Source
	Session           *Session
	Synthesizer       *Synthesizer
	DraftYear         int
	LiveRefresh       time.Duration
	ProjectionRefresh time.Duration
	Clock             clockwork.Clock
	Logger            *slog.Logger
	Metrics           *metrics.Recorder
	Archiver          Archiver
}

// Updater runs update cycles: it gates on freshness, loads from the Source, synthesizes a
// snapshot and publishes it. A failed cycle leaves the previous snapshot in place.
type Updater struct {
	source    Source
	session   *Session
	synth     *Synthesizer
	year      int
	liveEvery time.Duration
	idleEvery time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *metrics.Recorder
	archiver  Archiver

	mu         sync.Mutex
	state      State
	lastUpdate time.Time
}

// NewUpdater constructs an Updater. Session and Synthesizer default to empty instances.
func NewUpdater(cfg UpdaterConfig) *Updater {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Session == nil {
		cfg.Session = NewSession()
	}
	if cfg.Synthesizer == nil {
		cfg.Synthesizer = NewSynthesizer(nil, nil)
	}
	return &Updater{
		source:    cfg.Source,
		session:   cfg.Session,
		synth:     cfg.Synthesizer,
		year:      cfg.DraftYear,
		liveEvery: cfg.LiveRefresh,
		idleEvery: cfg.ProjectionRefresh,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		archiver:  cfg.Archiver,
		state:     InitialState(),
	}
}

// Session exposes the session the updater publishes to.
func (u *Updater) Session() *Session {
	return u.session
}

// State returns the tracked draft state.
func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Update runs a cycle if the refresh interval for the current mode has elapsed.
// It reports whether a cycle ran.
func (u *Updater) Update(ctx context.Context) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.dueLocked() {
		return false, nil
	}
	return true, u.cycleLocked(ctx)
}

// Refresh runs a cycle regardless of freshness.
func (u *Updater) Refresh(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.lastUpdate = time.Time{}
	return u.cycleLocked(ctx)
}

// RefreshInterval returns the interval that applies to the tracked state.
func (u *Updater) RefreshInterval() time.Duration {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.intervalLocked()
}

func (u *Updater) intervalLocked() time.Duration {
	if u.state.IsLive {
		return u.liveEvery
	}
	return u.idleEvery
}

func (u *Updater) dueLocked() bool {
	if u.lastUpdate.IsZero() {
		return true
	}
	return u.clock.Since(u.lastUpdate) >= u.intervalLocked()
}

func (u *Updater) cycleLocked(ctx context.Context) (err error) {
	start := u.clock.Now()
	mode := "unknown"
	if u.source != nil {
		mode = u.source.Mode()
	}
	log := u.logger
	if log != nil {
		log = log.With(
			slog.String(logging.FieldCycleID, uuid.NewString()),
			slog.String(logging.FieldMode, mode),
			slog.Int(logging.FieldSeason, u.year),
		)
	}
	logging.Info(log, "updating draft data", logging.FieldLive, u.state.IsLive)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draft update panicked: %v", r)
		}
		u.metrics.RecordUpdateCycle(mode, u.clock.Since(start), err)
		if err != nil && !errors.Is(err, ErrFeedUnavailable) {
			logging.Error(log, "draft update failed", err)
		}
	}()

	if u.source == nil {
		return errors.New("draft source not configured")
	}

	state, picks, err := u.source.Load(logging.WithLogger(ctx, log), u.state)
	if errors.Is(err, ErrFeedUnavailable) {
		// keep the hint so cadence follows the calendar while the feed is down
		u.state.IsLive = state.IsLive
		logging.Warn(log, "draft feed unavailable, keeping previous snapshot",
			logging.FieldLive, state.IsLive,
		)
		return err
	}
	if err != nil {
		return fmt.Errorf("load %s picks: %w", mode, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("load %s picks: %w", mode, ctxErr)
	}

	snap := u.synth.Synthesize(u.year, state, picks, u.clock.Now())
	u.session.Publish(snap)
	u.state = State{Status: snap.Status, IsLive: snap.IsLive, CurrentRound: state.CurrentRound}
	u.lastUpdate = u.clock.Now()

	logging.Info(log, "draft data updated",
		logging.FieldCount, snap.PicksLoaded,
		logging.FieldStatus, string(snap.Status),
		logging.FieldRound, snap.DisplayRound,
		logging.FieldDurationMS, u.clock.Since(start).Milliseconds(),
	)

	if u.archiver != nil && (snap.Status == StatusComplete || snap.Status == StatusSimulate) {
		if archErr := u.archiver.WriteSeason(snap); archErr != nil {
			logging.Warn(log, "draft archive write failed", "error", archErr)
		}
	}
	return nil
}
