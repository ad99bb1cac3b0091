package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nfl-draft-service/internal/archive"
	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
	"github.com/preston-bernstein/nfl-draft-service/internal/poller"
)

const msgNotLoaded = "draft data not loaded yet"

// SnapshotSource exposes the most recently published draft snapshot.
type SnapshotSource interface {
	Snapshot() (draft.Snapshot, bool)
}

// Handler wires HTTP routes to the published draft session.
type Handler struct {
	snaps    SnapshotSource
	archive  archive.Store
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. archive and statusFn may be nil.
func NewHandler(snaps SnapshotSource, store archive.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		snaps:    snaps,
		archive:  store,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Draft returns the full published snapshot.
func (h *Handler) Draft(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

type picksResponse struct {
	DraftYear int          `json:"draft_year"`
	Status    draft.Status `json:"draft_status"`
	Round     int          `json:"round,omitempty"`
	Picks     []draft.Pick `json:"picks"`
}

// Picks returns every published pick, or only one round's picks when ?round=N is given.
func (h *Handler) Picks(w nethttp.ResponseWriter, r *nethttp.Request) {
	round := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("round")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > draft.TotalRounds {
			writeError(w, r, nethttp.StatusBadRequest, "invalid round (expected 1-7)", h.logger)
			return
		}
		round = n
	}

	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	picks := snap.Picks
	if round > 0 {
		picks = snap.PicksInRound(round)
	}
	if picks == nil {
		picks = []draft.Pick{}
	}
	writeJSON(w, nethttp.StatusOK, picksResponse{
		DraftYear: snap.DraftYear,
		Status:    snap.Status,
		Round:     round,
		Picks:     picks,
	}, h.logger)
}

type favoritesResponse struct {
	DraftYear int          `json:"draft_year"`
	Favorites []draft.Pick `json:"favorites"`
}

// Favorites returns the favorite-team highlight list.
func (h *Handler) Favorites(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	favorites := snap.Favorites
	if favorites == nil {
		favorites = []draft.Pick{}
	}
	writeJSON(w, nethttp.StatusOK, favoritesResponse{
		DraftYear: snap.DraftYear,
		Favorites: favorites,
	}, h.logger)
}

// Archive serves a finished season from the on-disk archive.
func (h *Handler) Archive(w nethttp.ResponseWriter, r *nethttp.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year <= 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid year", h.logger)
		return
	}
	if h.archive == nil {
		writeError(w, r, nethttp.StatusNotFound, "archive not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	snap, err := h.archive.LoadSeason(year)
	switch {
	case errors.Is(err, archive.ErrSeasonNotArchived):
		writeError(w, r, nethttp.StatusNotFound, "season not archived", h.logger)
		return
	case err != nil:
		logging.Error(logger, "archive load failed", err, slog.Int(logging.FieldSeason, year))
		writeError(w, r, nethttp.StatusInternalServerError, "archive unavailable", h.logger)
		return
	}
	logging.Info(logger, "served archived season",
		slog.Int(logging.FieldSeason, year),
		slog.Int(logging.FieldCount, len(snap.Picks)),
	)
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

func (h *Handler) snapshot(w nethttp.ResponseWriter, r *nethttp.Request) (draft.Snapshot, bool) {
	if h.snaps == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, msgNotLoaded, h.logger)
		return draft.Snapshot{}, false
	}
	snap, ok := h.snaps.Snapshot()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, msgNotLoaded, h.logger)
		return draft.Snapshot{}, false
	}
	return snap, true
}
