package facebook

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Bella040/facebook-reel-scraper/pkg/config"
	errs "github.com/Bella040/facebook-reel-scraper/pkg/errors"
	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
	"github.com/Bella040/facebook-reel-scraper/pkg/proxy"
	"github.com/Bella040/facebook-reel-scraper/pkg/ratelimit"
	"github.com/Bella040/facebook-reel-scraper/pkg/retry"
)

// DefaultHeaders are sent with every request
var DefaultHeaders = map[string]string{
	"User-Agent":      config.DefaultUserAgent,
	"Accept-Language": "en-US,en;q=0.9",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Options configures a Client
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	ProxyURL   *url.URL
	MaxRetries int
	Limiter    ratelimit.Limiter
	Backoff    retry.BackoffStrategy
	Logger     logger.Logger
}

// Client fetches public Facebook pages
type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	retry   *retry.Config
	logger  logger.Logger
}

// NewClient creates a new page fetcher
func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.NewPerMinute(0)
	}
	backoff := opts.Backoff
	if backoff == nil {
		backoff = retry.NewErrorTypeBackoff()
	}

	rc := resty.New().
		SetHeaders(DefaultHeaders).
		SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.ProxyURL != nil {
		rc.SetProxy(opts.ProxyURL.String())
	}

	return &Client{
		http:    rc,
		limiter: limiter,
		retry: &retry.Config{
			MaxAttempts: opts.MaxRetries + 1,
			Backoff:     backoff,
			Logger:      log,
		},
		logger: log,
	}
}

// NewClientFromConfig builds a Client from the HTTP and proxy settings
func NewClientFromConfig(cfg *config.Config, log logger.Logger) (*Client, error) {
	proxies, err := proxy.NewManager(cfg.ProxySpecs())
	if err != nil {
		return nil, err
	}
	return NewClient(Options{
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    time.Duration(cfg.HTTP.TimeoutSec) * time.Second,
		ProxyURL:   proxies.ProxyURL(),
		MaxRetries: cfg.HTTP.MaxRetries,
		Limiter:    ratelimit.NewPerMinute(cfg.HTTP.RequestsPerMinute),
		Logger:     log,
	}), nil
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.http.SetHeader(key, value)
}

// Fetch returns the body of pageURL. Transient failures are retried;
// status codes of 400 and above are returned as typed errors.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, error) {
	return retry.DoWithResult(ctx, func(ctx context.Context) (string, error) {
		return c.fetchOnce(ctx, pageURL)
	}, c.retry)
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"url":      pageURL,
			"error":    err.Error(),
			"duration": time.Since(start),
		})
		return "", errs.Network(pageURL, err)
	}

	logger.LogRequest(c.logger, http.MethodGet, pageURL, resp.StatusCode(), time.Since(start))
	if fetchErr := errs.FromStatus(pageURL, resp.StatusCode()); fetchErr != nil {
		return "", fetchErr
	}
	return resp.String(), nil
}
