package resolve

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/avelichko/jobsift/internal/ratelimit"
)

// Fetcher retrieves posting pages for enrichment. Every request passes
// through the per-host limiter. Any failure or non-200 response yields an
// empty body, which the runner records as issue flags instead of an error.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *ratelimit.HostLimiter
	logger    *slog.Logger
}

// NewFetcher creates a page fetcher.
func NewFetcher(client *http.Client, userAgent string, limiter *ratelimit.HostLimiter, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		limiter:   limiter,
		logger:    logger,
	}
}

// Page returns the body at url, or "" on any failure.
func (f *Fetcher) Page(ctx context.Context, url string) string {
	if err := f.limiter.Wait(ctx, url); err != nil {
		f.logger.Debug("page fetch aborted", "url", url, "error", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("page fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Debug("page fetch returned non-200", "url", url, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(body)
}
