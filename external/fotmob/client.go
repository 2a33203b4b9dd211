package fotmob

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/platform/resilience"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

const (
	defaultBaseURL      = "https://www.fotmob.com/api"
	defaultStatsBaseURL = "https://data.fotmob.com/stats"
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	maxBodyBytes        = 8 << 20
	defaultConcurrency  = 4
	providerName        = "fotmob"
)

var errFotMobTransient = crerr.New("fotmob transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	StatsBaseURL   string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	RequestsPerSec float64
	Concurrency    int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client talks to the FotMob JSON endpoints and turns documents into
// canonical records.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	statsBaseURL string
	retry        resilience.RetryPolicy
	limiter      *rate.Limiter
	concurrency  int
	logger       *logging.Logger
	breaker      *resilience.Breaker
	flight       singleflight.Group
	now          func() time.Time
}

var _ usecase.FootballSource = (*Client)(nil)
var _ usecase.NewsSource = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	statsBaseURL := strings.TrimRight(strings.TrimSpace(cfg.StatsBaseURL), "/")
	if statsBaseURL == "" {
		statsBaseURL = defaultStatsBaseURL
	}

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		statsBaseURL: statsBaseURL,
		retry:        resilience.RetryPolicy{Attempts: attempts, Delay: cfg.RetryDelay},
		limiter:      rate.NewLimiter(limit, 1),
		concurrency:  concurrency,
		logger:       logger,
		breaker:      resilience.NewBreaker(cfg.CircuitBreaker),
		now:          time.Now,
	}
}

// getDocument fetches one JSON document as a generic map. FotMob documents
// change shape between seasons, so parsing walks maps instead of structs.
func (c *Client) getDocument(ctx context.Context, endpoint, rawURL string) (map[string]any, error) {
	raw, err := c.get(ctx, endpoint, rawURL)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", endpoint, err)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "fotmob circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
		metrics.ObserveUpstream(providerName, endpoint, "rejected", 0)
		return nil, fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	out, err, _ := c.flight.Do(rawURL, func() (any, error) {
		started := time.Now()
		raw, reqErr := c.executeRequest(ctx, rawURL)
		c.breaker.Record(isTransient(reqErr))

		outcome := "ok"
		if reqErr != nil {
			outcome = "error"
		}
		metrics.ObserveUpstream(providerName, endpoint, outcome, time.Since(started))
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := resilience.Retry(ctx, c.retry, isTransient, func(ctx context.Context, attempt int) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", defaultUserAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Referer", "https://www.fotmob.com/")
		req.Header.Set("Origin", "https://www.fotmob.com")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return crerr.Mark(fmt.Errorf("send request attempt=%d: %w", attempt, err), errFotMobTransient)
		}
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			return crerr.Mark(fmt.Errorf("read response body: %w", readErr), errFotMobTransient)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body = raw
			return nil
		}
		statusErr := fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		if isRetryableStatus(resp.StatusCode) {
			return crerr.Mark(statusErr, errFotMobTransient)
		}
		return statusErr
	})
	if err != nil {
		if !stderrors.Is(err, context.Canceled) && !stderrors.Is(err, context.DeadlineExceeded) {
			c.logger.WarnContext(ctx, "fotmob request failed", "url", redactURL(rawURL), "error", err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) leagueURL(leagueID int) string {
	return fmt.Sprintf("%s/leagues?id=%d", c.baseURL, leagueID)
}

func (c *Client) teamURL(teamID string) string {
	return c.baseURL + "/teams?id=" + url.QueryEscape(teamID)
}

func (c *Client) matchDetailsURL(matchID string) string {
	return c.baseURL + "/matchDetails?matchId=" + url.QueryEscape(matchID)
}

func (c *Client) statsURL(leagueID, seasonID int, stat string) string {
	return fmt.Sprintf("%s/%d/season/%d/%s.json", c.statsBaseURL, leagueID, seasonID, stat)
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errFotMobTransient)
}

func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.RawQuery = ""
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
