package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/internal/core/port"
	"github.com/niksmo/productlist/pkg/retry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var _ port.ProductsFetcher = (*Client)(nil)

const maxBodySize = 10 << 20

type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

type Opt func(*Client)

func HTTPClientOpt(hc *http.Client) Opt {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// TimeoutOpt bounds a single request. Zero keeps requests unbounded.
func TimeoutOpt(d time.Duration) Opt {
	return func(c *Client) {
		c.timeout = d
	}
}

// RetryOpt enables automatic retries of network errors and 5xx statuses.
func RetryOpt(maxAttempts int, delay time.Duration) Opt {
	return func(c *Client) {
		c.retry.MaxAttempts = maxAttempts
		c.retry.Backoff = retry.ExponentialBackoff(delay)
	}
}

// A Client fetches the product list document from a fixed URL.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	retry      retry.RetryConfig
}

func New(url string, opts ...Opt) Client {
	c := Client{
		url: url,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		retry: retry.RetryConfig{MaxAttempts: 1},
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.retry.ShouldRetry = retryable
	return c
}

func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	ps, err := retry.DoWithResult(ctx, c.retry, func() ([]domain.Product, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (c Client) fetch(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.fetch"
	log := slog.With("op", op)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrNetwork, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn("failed to close response body", "err", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("%s: %w: %w",
			op, domain.ErrFetch, StatusError{resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrNetwork, err)
	}

	ps, err := decodeProducts(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrParse, err)
	}

	log.Debug("catalog fetched", "nProducts", len(ps))
	return ps, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, domain.ErrNetwork) {
		return true
	}
	var se StatusError
	return errors.As(err, &se) && se.Code >= http.StatusInternalServerError
}
