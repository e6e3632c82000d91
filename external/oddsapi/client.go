package oddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/oddsboard/internal/domain/feed"
	"github.com/riskibarqy/oddsboard/internal/domain/league"
	"github.com/riskibarqy/oddsboard/internal/domain/rawdata"
	"github.com/riskibarqy/oddsboard/internal/platform/logging"
	"github.com/riskibarqy/oddsboard/internal/platform/metrics"
	"github.com/riskibarqy/oddsboard/internal/platform/resilience"
	"github.com/riskibarqy/oddsboard/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.the-odds-api.com"
	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 6 << 20
	sourceName       = "the-odds-api"
	dependencyName   = "oddsapi"

	endpointSports    = "sports"
	endpointOdds      = "odds"
	endpointEventOdds = "event_odds"

	headerRequestsRemaining = "x-requests-remaining"
	headerRequestsUsed      = "x-requests-used"
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)
var errOddsAPITransient = crerr.New("odds api transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RatePerSecond  float64
	Burst          int
	Logger         *logging.Logger
	Metrics        *metrics.Metrics
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to The Odds API v4.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	limiter        *rate.Limiter
	logger         *logging.Logger
	metrics        *metrics.Metrics
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
	backoff        func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL, err := validateHTTPBaseURL(baseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid ODDS_API_BASE_URL")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "oddsboard",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 90 * time.Second,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker(breakerCfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		cfg.Metrics.SetCircuitState(dependencyName, to.Float())
		logger.Warn("odds api circuit breaker changed state", "from", from, "to", to)
	})
	cfg.Metrics.SetCircuitState(dependencyName, breaker.State().Float())

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		limiter:        rate.NewLimiter(limit, burst),
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}, nil
}

// FetchSports lists in-season sports, or every sport when includeInactive
// is set.
func (c *Client) FetchSports(ctx context.Context, includeInactive bool) ([]league.League, error) {
	query := url.Values{}
	if includeInactive {
		query.Set("all", "true")
	}

	raw, err := c.doRequest(ctx, endpointSports, "/v4/sports", query)
	if err != nil {
		return nil, fmt.Errorf("fetch sports: %w", err)
	}

	var items []sportItem
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode sports payload: %v", usecase.ErrDependencyUnavailable, err)
	}

	out := make([]league.League, 0, len(items))
	for _, item := range items {
		out = append(out, item.toLeague())
	}
	return out, nil
}

// FetchOdds returns the raw odds body for every upcoming match of a sport.
func (c *Client) FetchOdds(ctx context.Context, req feed.Request) (rawdata.Payload, error) {
	req = req.Normalized()
	if req.SportKey == "" {
		return rawdata.Payload{}, fmt.Errorf("%w: sport key is required", usecase.ErrInvalidInput)
	}

	path := "/v4/sports/" + url.PathEscape(req.SportKey) + "/odds"
	raw, err := c.doRequest(ctx, endpointOdds, path, oddsQuery(req))
	if err != nil {
		return rawdata.Payload{}, fmt.Errorf("fetch odds sport=%s: %w", req.SportKey, err)
	}
	if err := validateJSON(raw); err != nil {
		return rawdata.Payload{}, err
	}

	return c.buildPayload(req, raw), nil
}

// FetchEventOdds returns the raw odds body for a single match.
func (c *Client) FetchEventOdds(ctx context.Context, req feed.Request, eventID string) (rawdata.Payload, error) {
	req = req.Normalized()
	eventID = strings.TrimSpace(eventID)
	if req.SportKey == "" || eventID == "" {
		return rawdata.Payload{}, fmt.Errorf("%w: sport key and event id are required", usecase.ErrInvalidInput)
	}

	path := "/v4/sports/" + url.PathEscape(req.SportKey) + "/events/" + url.PathEscape(eventID) + "/odds"
	raw, err := c.doRequest(ctx, endpointEventOdds, path, oddsQuery(req))
	if err != nil {
		return rawdata.Payload{}, fmt.Errorf("fetch event odds sport=%s event=%s: %w", req.SportKey, eventID, err)
	}
	if err := validateJSON(raw); err != nil {
		return rawdata.Payload{}, err
	}

	payload := c.buildPayload(req, raw)
	payload.FeedKey = req.CacheKey() + "|" + eventID
	return payload, nil
}

func oddsQuery(req feed.Request) url.Values {
	query := url.Values{}
	if len(req.Regions) > 0 {
		query.Set("regions", strings.Join(req.Regions, ","))
	}
	if len(req.Markets) > 0 {
		query.Set("markets", strings.Join(req.Markets, ","))
	}
	query.Set("oddsFormat", "decimal")
	query.Set("dateFormat", "iso")
	return query
}

func (c *Client) buildPayload(req feed.Request, raw []byte) rawdata.Payload {
	return rawdata.Payload{
		Source:      sourceName,
		SportKey:    req.SportKey,
		FeedKey:     req.CacheKey(),
		PayloadJSON: string(raw),
		PayloadHash: rawdata.HashPayload(raw),
		FetchedAt:   c.now().UTC(),
	}
}

func (c *Client) doRequest(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds api circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(ctx, fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(context.WithoutCancel(ctx), endpoint, fullURL)
		if c.circuitEnabled {
			c.breaker.Record(reqErr, isOddsAPICircuitFailure)
		}
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

func (c *Client) buildURL(path string, query url.Values) string {
	values := url.Values{}
	for key, items := range query {
		values[key] = items
	}
	if c.apiKey != "" {
		values.Set("apiKey", c.apiKey)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	if encoded := values.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, endpoint, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}

		raw, status, err := c.send(ctx, endpoint, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %s", errOddsAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOddsAPITransient, status, abbreviateBody(raw))
		default:
			return nil, statusError(status, raw)
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "odds api request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, lastErr)
}

// send performs one GET and returns a copy of the body, since fasthttp
// recycles response buffers.
func (c *Client) send(ctx context.Context, endpoint, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	start := c.now()
	err := c.httpClient.DoTimeout(req, resp, timeout)
	elapsed := c.now().Sub(start)
	if err != nil {
		c.metrics.RecordProviderRequest(endpoint, "transport_error", elapsed)
		return nil, 0, err
	}

	status := resp.StatusCode()
	c.metrics.RecordProviderRequest(endpoint, strconv.Itoa(status), elapsed)

	remaining := string(resp.Header.Peek(headerRequestsRemaining))
	used := string(resp.Header.Peek(headerRequestsUsed))
	if remaining != "" || used != "" {
		c.metrics.SetProviderQuota(remaining, used)
		c.logger.DebugContext(ctx, "odds api quota", "endpoint", endpoint, "remaining", remaining, "used", used)
	}

	body := append([]byte(nil), resp.Body()...)
	return body, status, nil
}

func statusError(status int, raw []byte) error {
	body := abbreviateBody(raw)
	switch status {
	case fasthttp.StatusUnauthorized, fasthttp.StatusForbidden:
		return fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrUnauthorized, status, body)
	case fasthttp.StatusNotFound:
		return fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrNotFound, status, body)
	case fasthttp.StatusBadRequest, fasthttp.StatusUnprocessableEntity:
		return fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrInvalidInput, status, body)
	default:
		return fmt.Errorf("provider status=%d body=%s", status, body)
	}
}

func validateJSON(raw []byte) error {
	var probe any
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: decode odds payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apiKey=REDACTED")
}

func isOddsAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errOddsAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeSensitiveText(rawURL, "")
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}
