// Package fetch issues the HTTP GETs behind every feed. It never returns errors to callers:
// a failed request yields a nil document.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
)

// UserAgent is sent with every request; the provider rejects some default Go agents.
const UserAgent = "Mozilla/5.0"

const (
	defaultRetries   = 2
	defaultBaseDelay = 250 * time.Millisecond
	defaultTimeout   = 15 * time.Second
	maxBodyBytes     = 16 << 20
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the gateway reaches upstream feeds.
type Config struct {
	HTTPClient *http.Client
	Retries    int
	BaseDelay  time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Gateway performs JSON GETs with per-request timeouts and bounded batch concurrency.
type Gateway struct {
	client    httpDoer
	retries   int
	baseDelay time.Duration
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
}

// New constructs a Gateway. Retries < 0 disables retrying; 0 uses the default.
func New(cfg Config) *Gateway {
	var client httpDoer = http.DefaultClient
	if cfg.HTTPClient != nil {
		client = cfg.HTTPClient
	}
	retries := cfg.Retries
	if retries == 0 {
		retries = defaultRetries
	}
	if retries < 0 {
		retries = 0
	}
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = defaultBaseDelay
	}
	return &Gateway{
		client:    client,
		retries:   retries,
		baseDelay: delay,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		now:       time.Now,
	}
}

// Fetch GETs rawURL and returns the JSON body, or nil on any failure. Transient failures are
// retried with exponential backoff.
func (g *Gateway) Fetch(ctx context.Context, rawURL string, timeout time.Duration) json.RawMessage {
	if rawURL == "" {
		return nil
	}
	logger := logging.FromContext(ctx, g.logger)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.baseDelay
	policy.MaxElapsedTime = 0
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(g.retries)), ctx)

	var body json.RawMessage
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		doc, err := g.get(ctx, rawURL, timeout)
		if err == nil {
			body = doc
			return nil
		}
		if !transient(err) {
			return backoff.Permanent(err)
		}
		if attempt <= g.retries {
			logging.Warn(logger, "feed fetch retry",
				logging.FieldURL, rawURL,
				"attempt", attempt,
				"error", err,
			)
		}
		return err
	}, retry)
	if err != nil {
		logging.Warn(logger, "feed fetch failed", logging.FieldURL, rawURL, "attempts", attempt, "error", err)
		return nil
	}
	return body
}

// FetchMany fetches every URL with at most limit requests in flight. Results are index-aligned
// with urls; failed or empty entries are nil. Items are not retried.
func (g *Gateway) FetchMany(ctx context.Context, urls []string, limit int, timeout time.Duration) []json.RawMessage {
	out := make([]json.RawMessage, len(urls))
	if len(urls) == 0 {
		return out
	}
	if limit <= 0 {
		limit = 1
	}
	logger := logging.FromContext(ctx, g.logger)

	var group errgroup.Group
	group.SetLimit(limit)
	for i, u := range urls {
		if u == "" {
			continue
		}
		group.Go(func() error {
			doc, err := g.get(ctx, u, timeout)
			if err != nil {
				logging.Warn(logger, "batch item fetch failed", logging.FieldURL, u, "error", err)
				return nil
			}
			out[i] = doc
			return nil
		})
	}
	_ = group.Wait()
	return out
}

func (g *Gateway) get(ctx context.Context, rawURL string, timeout time.Duration) (json.RawMessage, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := EndpointLabel(rawURL)
	start := g.now()
	body, err := g.do(reqCtx, rawURL)
	g.metrics.RecordFetch(endpoint, time.Since(start), err)
	if statusErr, ok := AsStatusError(err); ok && statusErr.StatusCode == http.StatusTooManyRequests {
		g.metrics.RecordRateLimit(endpoint, statusErr.RetryAfter)
	}
	return body, err
}

func (g *Gateway) do(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), g.now()),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	if !json.Valid(body) {
		return nil, errNotJSON
	}
	return json.RawMessage(body), nil
}

var errNotJSON = errors.New("response body is not valid JSON")

func transient(err error) bool {
	if errors.Is(err, errNotJSON) || errors.Is(err, context.Canceled) {
		return false
	}
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return false
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.Transient()
	}
	return true
}

// EndpointLabel reduces a URL to a low-cardinality metric label: host and path with numeric
// segments replaced.
func EndpointLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, seg := range segments {
		if seg != "" && strings.Trim(seg, "0123456789") == "" {
			segments[i] = ":id"
		}
	}
	return parsed.Host + "/" + strings.Join(segments, "/")
}
