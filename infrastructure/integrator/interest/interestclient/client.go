package interestclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ratesapi-nz/rates-api/internal/config"
	"github.com/ratesapi-nz/rates-api/pkg/log"
)

// Client fetches raw HTML pages from interest.co.nz with the configured
// timeout and retry policy.
type Client interface {
	GetPage(ctx context.Context, path string) (string, error)
}

// retryableStatuses are transient upstream conditions worth another attempt.
var retryableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

type InterestClient struct {
	cfg        config.Scraper
	httpClient *http.Client
}

func NewClient(cfg config.Scraper) *InterestClient {
	return &InterestClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *InterestClient) GetPage(ctx context.Context, path string) (string, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")

	var lastErr error
	attempts := c.cfg.Retries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		body, retryable, err := c.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable || attempt == attempts {
			break
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"url":     url,
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("scrape fetch failed, retrying")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.cfg.RetryDelay):
		}
	}

	return "", errors.Wrapf(lastErr, "fetching %s", url)
}

func (c *InterestClient) fetch(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network level failures (timeouts, resets) are all retryable.
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, retryable = retryableStatuses[resp.StatusCode]
		return "", retryable, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}

	return string(data), false, nil
}
