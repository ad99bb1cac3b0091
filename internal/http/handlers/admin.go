package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
	"github.com/preston-bernstein/nfl-draft-service/internal/http/requestutil"
	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
)

// Refresher forces an immediate update cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints guarded by ADMIN_TOKEN.
type AdminHandler struct {
	refresher Refresher
	snaps     SnapshotSource
	token     string
	logger    *slog.Logger
	onRefresh func(error)
}

// NewAdminHandler constructs an AdminHandler. onRefresh, when set, receives every
// refresh outcome so the poller's readiness reflects out-of-band cycles.
func NewAdminHandler(refresher Refresher, snaps SnapshotSource, token string, logger *slog.Logger, onRefresh func(error)) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		snaps:     snaps,
		token:     token,
		logger:    logger,
		onRefresh: onRefresh,
	}
}

type refreshResponse struct {
	Status      string       `json:"status"`
	DraftStatus draft.Status `json:"draft_status,omitempty"`
	PicksLoaded int          `json:"picks_loaded"`
}

// Refresh runs an update cycle immediately, ignoring the refresh interval.
// Returns 401 when the bearer token is missing or wrong.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requestutil.MatchesBearer(r, h.token) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "updater not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	// the cycle finishes even if the caller disconnects
	err := h.refresher.Refresh(context.WithoutCancel(r.Context()))
	if h.onRefresh != nil {
		h.onRefresh(err)
	}
	switch {
	case errors.Is(err, draft.ErrFeedUnavailable):
		logging.Warn(logger, "admin refresh found no feed data")
		writeError(w, r, http.StatusServiceUnavailable, "draft feed unavailable", logger)
		return
	case err != nil:
		logging.Error(logger, "admin refresh failed", err)
		writeError(w, r, http.StatusBadGateway, "refresh failed", logger)
		return
	}

	resp := refreshResponse{Status: "ok"}
	if h.snaps != nil {
		if snap, ok := h.snaps.Snapshot(); ok {
			resp.DraftStatus = snap.Status
			resp.PicksLoaded = snap.PicksLoaded
		}
	}
	writeJSON(w, http.StatusOK, resp, logger)
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldStatus, string(resp.DraftStatus)),
		slog.Int(logging.FieldCount, resp.PicksLoaded),
	)
}
