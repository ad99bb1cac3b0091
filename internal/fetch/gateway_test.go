package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
)

func newTestGateway(rec *metrics.Recorder) *Gateway {
	return New(Config{BaseDelay: time.Millisecond, Metrics: rec})
}

func TestFetchReturnsJSONAndSendsUserAgent(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body := newTestGateway(nil).Fetch(context.Background(), srv.URL, time.Second)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, UserAgent, gotAgent)
}

func TestFetchReturnsNilForBadResponses(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
		"html":      func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>")) },
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				handler(w, r)
			}))
			defer srv.Close()

			assert.Nil(t, newTestGateway(nil).Fetch(context.Background(), srv.URL, time.Second))
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "permanent failures are not retried")
		})
	}
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[1,2]`))
	}))
	defer srv.Close()

	rec := metrics.NewRecorder()
	body := newTestGateway(rec).Fetch(context.Background(), srv.URL, time.Second)
	assert.JSONEq(t, `[1,2]`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	label := EndpointLabel(srv.URL)
	assert.Equal(t, 3, rec.FetchCalls(label))
	assert.Equal(t, 2, rec.FetchErrors(label))
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rec := metrics.NewRecorder()
	assert.Nil(t, newTestGateway(rec).Fetch(context.Background(), srv.URL, time.Second))
	assert.Equal(t, int32(defaultRetries+1), atomic.LoadInt32(&calls))

	snap := rec.Snapshot(EndpointLabel(srv.URL))
	assert.Equal(t, defaultRetries+1, snap.RateLimitHits)
	assert.Equal(t, 7*time.Second, snap.LastRetryAfter)
}

func TestFetchTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gw := New(Config{Retries: -1})
	assert.Nil(t, gw.Fetch(context.Background(), srv.URL, 20*time.Millisecond))
}

func TestFetchEmptyURL(t *testing.T) {
	assert.Nil(t, newTestGateway(nil).Fetch(context.Background(), "", time.Second))
}

func TestFetchManyPreservesOrderAndBoundsConcurrency(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()

		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = fmt.Fprintf(w, `{"path":%q}`, r.URL.Path)
	}))
	defer srv.Close()

	urls := make([]string, 0, 12)
	for i := 0; i < 10; i++ {
		urls = append(urls, fmt.Sprintf("%s/item/%d", srv.URL, i))
	}
	urls = append(urls, "", srv.URL+"/fail")

	out := newTestGateway(nil).FetchMany(context.Background(), urls, 3, time.Second)
	require.Len(t, out, len(urls))
	for i := 0; i < 10; i++ {
		assert.JSONEq(t, fmt.Sprintf(`{"path":"/item/%d"}`, i), string(out[i]))
	}
	assert.Nil(t, out[10])
	assert.Nil(t, out[11])

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 3)
}

func TestFetchManyEmpty(t *testing.T) {
	assert.Empty(t, newTestGateway(nil).FetchMany(context.Background(), nil, 5, time.Second))
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t,
		"sports.core.api.espn.com/v2/sports/football/leagues/nfl/seasons/:id/draft/athletes/:id",
		EndpointLabel("https://sports.core.api.espn.com/v2/sports/football/leagues/nfl/seasons/2026/draft/athletes/4432577?lang=en"),
	)
	assert.Equal(t, "unknown", EndpointLabel("::"))
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 4, 24, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 5*time.Second, parseRetryAfter("5", now))
	assert.Equal(t, 30*time.Second, parseRetryAfter(now.Add(30*time.Second).Format(http.TimeFormat), now))
	assert.Zero(t, parseRetryAfter("", now))
	assert.Zero(t, parseRetryAfter("soon", now))
}

func TestStatusErrorTransient(t *testing.T) {
	assert.True(t, (&StatusError{StatusCode: 429}).Transient())
	assert.True(t, (&StatusError{StatusCode: 503}).Transient())
	assert.False(t, (&StatusError{StatusCode: 404}).Transient())
	_, ok := AsStatusError(fmt.Errorf("wrapped: %w", &StatusError{StatusCode: 500}))
	assert.True(t, ok)
}
