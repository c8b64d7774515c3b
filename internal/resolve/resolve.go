package resolve

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avelichko/jobsift/internal/model"
)

// Runner resolves each target's posting page into an Enrichment row:
// fetch the page, extract and classify its links, and compute the
// domain-match heuristic.
type Runner struct {
	fetcher *Fetcher
	limit   int
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner creates a runner. limit bounds in-flight page fetches and
// timeout is the per-target budget.
func NewRunner(fetcher *Fetcher, limit int, timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		fetcher: fetcher,
		limit:   limit,
		timeout: timeout,
		logger:  logger,
	}
}

// Run resolves all targets over the bounded pool and returns one Enrichment
// per target, in target order regardless of completion order.
func (r *Runner) Run(ctx context.Context, targets []model.Target) []model.Enrichment {
	results := make([]model.Enrichment, len(targets))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, t := range targets {
		g.Go(func() error {
			tctx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			results[i] = r.resolveOne(tctx, t)
			return nil
		})
	}
	_ = g.Wait()

	r.logger.Info("resolution complete", "targets", len(targets))
	return results
}

func (r *Runner) resolveOne(ctx context.Context, t model.Target) model.Enrichment {
	e := model.Enrichment{ID: t.ID, CheckedAt: time.Now()}

	page := r.fetcher.Page(ctx, t.URL)
	if page == "" {
		e.Issues = "no_html"
		return e
	}

	links := ExtractLinks(page)
	e.ResolvedURL, e.LinkedInURL = Classify(links)

	var flags []string
	if e.ResolvedURL == "" {
		flags = append(flags, "no_homepage")
	}
	if e.LinkedInURL == "" {
		flags = append(flags, "no_linkedin")
	}
	e.Issues = strings.Join(flags, ";")
	e.DomainMatch = DomainMatch(e.ResolvedURL, t.URL)

	r.logger.Debug("target resolved",
		"id", t.ID,
		"homepage", e.ResolvedURL,
		"issues", e.Issues,
	)
	return e
}
