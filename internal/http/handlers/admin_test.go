package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
	"github.com/preston-bernstein/nfl-draft-service/internal/testutil"
)

type stubRefresher struct {
	calls  int
	err    error
	ctxErr error
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.calls++
	s.ctxErr = ctx.Err()
	return s.err
}

func refreshRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	refresher := &stubRefresher{}
	h := NewAdminHandler(refresher, nil, "secret", nil, nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), refreshRequest(token))
		testutil.AssertErrorMessage(t, rr, http.StatusUnauthorized, "unauthorized")
	}
	if refresher.calls != 0 {
		t.Fatalf("expected no refresh without auth, got %d", refresher.calls)
	}
}

func TestAdminRefreshWithoutTokenConfiguredIsUnauthorized(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{}, nil, "", nil, nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), refreshRequest("anything"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshRunsCycle(t *testing.T) {
	refresher := &stubRefresher{}
	var outcomes []error
	h := NewAdminHandler(refresher, publishedSource(), "secret", nil, func(err error) {
		outcomes = append(outcomes, err)
	})

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), refreshRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp refreshResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Status != "ok" || resp.DraftStatus != draft.StatusLive || resp.PicksLoaded != 4 {
		t.Fatalf("unexpected refresh response %+v", resp)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one refresh, got %d", refresher.calls)
	}
	if len(outcomes) != 1 || outcomes[0] != nil {
		t.Fatalf("expected a successful outcome reported, got %v", outcomes)
	}
}

func TestAdminRefreshOutlivesDisconnectedClient(t *testing.T) {
	refresher := &stubRefresher{}
	h := NewAdminHandler(refresher, publishedSource(), "secret", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := refreshRequest("secret").WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if refresher.ctxErr != nil {
		t.Fatalf("expected refresh context to stay live, got %v", refresher.ctxErr)
	}
}

func TestAdminRefreshMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{name: "feed unavailable", err: draft.ErrFeedUnavailable, want: http.StatusServiceUnavailable, wantMsg: "draft feed unavailable"},
		{name: "other failure", err: errors.New("boom"), want: http.StatusBadGateway, wantMsg: "refresh failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reported error
			h := NewAdminHandler(&stubRefresher{err: tt.err}, nil, "secret", nil, func(err error) { reported = err })

			rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), refreshRequest("secret"))
			testutil.AssertErrorMessage(t, rr, tt.want, tt.wantMsg)
			if !errors.Is(reported, tt.err) {
				t.Fatalf("expected %v reported, got %v", tt.err, reported)
			}
		})
	}
}

func TestAdminRefreshWithoutUpdater(t *testing.T) {
	h := NewAdminHandler(nil, nil, "secret", nil, nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), refreshRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
