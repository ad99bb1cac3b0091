package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRounds reports a rounds setting that is neither "all" nor a list of rounds 1-7.
var ErrInvalidRounds = errors.New("invalid rounds: use comma-separated numbers 1-7 or 'all'")

const (
	minRound = 1
	maxRound = 7
)

// DraftConfig captures what the update cycle needs to know about the draft being tracked.
type DraftConfig struct {
	Rounds            []int
	DraftYear         int
	SimulateLive      bool
	SimulateYear      int
	FavoriteTeams     []string
	LiveRefresh       Duration
	ProjectionRefresh Duration
}

// Season returns the season whose feeds should be read: the simulated year when simulating.
func (d DraftConfig) Season() int {
	if d.SimulateLive {
		return d.SimulateYear
	}
	return d.DraftYear
}

func loadDraft(now time.Time, file fileDraft, logger *slog.Logger) DraftConfig {
	roundsRaw := envOrDefault(envRounds, file.Rounds)
	rounds, err := ParseRounds(roundsRaw)
	if err != nil {
		if logger != nil {
			logger.Warn("draft rounds invalid, using defaults", "rounds", roundsRaw, "error", err)
		}
		rounds = append([]int(nil), defaultRounds...)
	}

	simulateYear := intEnvOrDefault(envSimulateYear, file.SimulateYear)
	if simulateYear <= 0 {
		simulateYear = defaultSimulateYear
	}

	cfg := DraftConfig{
		Rounds:            rounds,
		DraftYear:         ResolveDraftYear(now, intEnvOrDefault(envDraftYear, file.DraftYear)),
		SimulateLive:      boolEnvOrDefault(envSimulateLive, file.SimulateLive),
		SimulateYear:      simulateYear,
		FavoriteTeams:     NormalizeFavorites(listEnvOrDefault(envFavoriteTeams, file.FavoriteTeams)),
		LiveRefresh:       durationEnvOrDefault(envLiveRefresh, fileDuration(file.LiveRefresh, defaultLiveRefresh)),
		ProjectionRefresh: durationEnvOrDefault(envProjectionRefresh, fileDuration(file.ProjectionRefresh, defaultProjectionRefresh)),
	}
	if cfg.SimulateLive {
		cfg.DraftYear = cfg.SimulateYear
	}
	return cfg
}

// ParseRounds parses "all" or a comma-separated list of rounds. An empty value yields the
// default rounds. The result is sorted and de-duplicated.
func ParseRounds(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append([]int(nil), defaultRounds...), nil
	}
	if strings.EqualFold(raw, "all") {
		all := make([]int, 0, maxRound)
		for r := minRound; r <= maxRound; r++ {
			all = append(all, r)
		}
		return all, nil
	}

	seen := make(map[int]struct{})
	var rounds []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRounds, part)
		}
		if r < minRound || r > maxRound {
			return nil, fmt.Errorf("%w: round %d out of range", ErrInvalidRounds, r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		rounds = append(rounds, r)
	}
	if len(rounds) == 0 {
		return nil, ErrInvalidRounds
	}
	sort.Ints(rounds)
	return rounds, nil
}

// ResolveDraftYear returns configured when set; 0 means auto-detect: before May the current
// year's draft, otherwise next year's.
func ResolveDraftYear(now time.Time, configured int) int {
	if configured > 0 {
		return configured
	}
	if now.Month() < time.May {
		return now.Year()
	}
	return now.Year() + 1
}

// NormalizeFavorites upper-cases and trims team abbreviations, keeping at most three.
func NormalizeFavorites(raw []string) []string {
	out := make([]string, 0, maxFavoriteTeams)
	for _, team := range raw {
		team = strings.ToUpper(strings.TrimSpace(team))
		if team == "" {
			continue
		}
		out = append(out, team)
		if len(out) == maxFavoriteTeams {
			break
		}
	}
	return out
}
