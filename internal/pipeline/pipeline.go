package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avelichko/jobsift/internal/dedup"
	"github.com/avelichko/jobsift/internal/model"
	"github.com/avelichko/jobsift/internal/rank"
	"github.com/avelichko/jobsift/internal/score"
)

// Task pairs a source fetcher with its identity for logging and aggregation.
type Task struct {
	Source  string
	Company string
	Fetcher model.SourceFetcher
}

// Runner owns the ingestion pipeline: concurrent source fetches fanned out
// over a bounded pool, then one consolidated filter/score/dedup/rank pass
// over the aggregate.
type Runner struct {
	filter   model.TitleFilter
	scorer   *score.Scorer
	limit    int
	timeout  time.Duration
	minScore int
	maxRows  int
	logger   *slog.Logger
}

// New creates a runner. limit bounds in-flight fetches, timeout is the
// per-task budget, minScore and maxRows gate the shipped batch.
func New(filter model.TitleFilter, scorer *score.Scorer, limit int, timeout time.Duration, minScore, maxRows int, logger *slog.Logger) *Runner {
	return &Runner{
		filter:   filter,
		scorer:   scorer,
		limit:    limit,
		timeout:  timeout,
		minScore: minScore,
		maxRows:  maxRows,
		logger:   logger,
	}
}

// Run fetches every task and returns the ranked batch. A failing task is
// logged and contributes nothing; it never blocks or fails the others.
// Contributions aggregate in task order regardless of completion order.
func (r *Runner) Run(ctx context.Context, tasks []Task) []model.Posting {
	results := make([][]model.Posting, len(tasks))

	var g errgroup.Group
	g.SetLimit(r.limit)
	for i, task := range tasks {
		g.Go(func() error {
			tctx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			postings, err := task.Fetcher.Fetch(tctx)
			if err != nil {
				r.logger.Warn("source fetch failed",
					"source", task.Source,
					"company", task.Company,
					"error", err,
				)
				return nil // best-effort: the batch ships without this source
			}
			results[i] = postings
			return nil
		})
	}
	_ = g.Wait()

	var aggregated []model.Posting
	for _, contribution := range results {
		aggregated = append(aggregated, contribution...)
	}

	// One consolidated pass: adapters already filter at the boundary, but
	// only titles accepted here ship.
	deduper := dedup.NewDeduper()
	kept := make([]model.Posting, 0, len(aggregated))
	for _, p := range aggregated {
		if !r.filter.Accept(p.Title) {
			continue
		}
		p.FitScore = r.scorer.Score(p.Title, p.Desc, p.Location)
		p.ID = dedup.Fingerprint(p.URL, p.Title)
		if !deduper.Add(p.ID) {
			continue
		}
		kept = append(kept, p)
	}

	batch := rank.Apply(kept, r.minScore, r.maxRows)
	r.logger.Info("collection complete",
		"tasks", len(tasks),
		"fetched", len(aggregated),
		"kept", len(kept),
		"shipped", len(batch),
	)
	return batch
}
