package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClientConfig bundles the shared HTTP client and the per-call deadline.
type HTTPClientConfig struct {
	Client  *http.Client
	Timeout time.Duration
}

var (
	errNotFound     = errors.New("not found")
	errUnexpected   = errors.New("unexpected status code")
	errNoHTTPClient = errors.New("http client not configured")
)

// doRequest executes a single GET under its own deadline. Non-2xx responses
// are turned into errors and their bodies drained; there are no retries.
// The returned cancel func must be called once the body has been consumed.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, context.CancelFunc, error) {
	if cfg.Client == nil {
		return nil, nil, errNoHTTPClient
	}

	cancel := context.CancelFunc(func() {})
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	}

	req, err := buildRequest(ctx)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	resp, err := cfg.Client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		cancel()
		return nil, nil, errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp)
		cancel()
		return nil, nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}

	return resp, cancel, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
