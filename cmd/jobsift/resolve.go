package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avelichko/jobsift/internal/config"
	"github.com/avelichko/jobsift/internal/model"
	"github.com/avelichko/jobsift/internal/ratelimit"
	"github.com/avelichko/jobsift/internal/resolve"
	"github.com/avelichko/jobsift/internal/sink"
	"github.com/avelichko/jobsift/internal/store"
)

var (
	resolveDryRun  bool
	resolveTargets string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Enrich shipped rows with employer links",
	Long: "Runs the resolution pipeline once: read the target table, fetch each posting page, " +
		"extract the employer homepage and company-profile links, and POST the QA rows to the sink.",
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveDryRun, "dry-run", false, "run the pipeline but log the QA rows instead of POSTing them")
	resolveCmd.Flags().StringVar(&resolveTargets, "targets", "", "target table location: http(s) URL, CSV path, or .db/.sqlite snapshot (overrides resolve.targets)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if resolveTargets != "" {
		cfg.Resolve.Targets = resolveTargets
	}
	// Dry-run never touches the sink, so the endpoint may be absent.
	if resolveDryRun {
		if cfg.Resolve.Targets == "" {
			logger.Error("resolve.targets is not configured")
			os.Exit(2)
		}
	} else if err := cfg.ValidateResolve(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	targets, err := readTargets(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to read targets", "location", cfg.Resolve.Targets, "error", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		logger.Info("no targets to resolve")
		return nil
	}
	logger.Info("targets loaded", "count", len(targets), "location", cfg.Resolve.Targets)

	limiter := ratelimit.NewHostLimiter(cfg.Limits.HostRPS, cfg.Limits.HostBurst)
	pageClient := &http.Client{Timeout: cfg.Limits.ResolveTimeout}
	fetcher := resolve.NewFetcher(pageClient, cfg.UserAgent, limiter, logger)
	runner := resolve.NewRunner(fetcher, cfg.Limits.MaxConcurrent, cfg.Limits.ResolveTimeout, logger)

	rows := runner.Run(ctx, targets)

	if resolveDryRun {
		logger.Info("dry-run: skipping sink delivery", "rows", len(rows))
		for _, e := range rows {
			logger.Info("would ship",
				"id", e.ID,
				"homepage", e.ResolvedURL,
				"linkedin", e.LinkedInURL,
				"domain_match", e.DomainMatch,
				"issues", e.Issues,
			)
		}
		return nil
	}

	sinkClient := sink.New(cfg.Sink.Endpoint, cfg.UserAgent, &http.Client{Timeout: cfg.Limits.SinkTimeout}, logger)
	if err := sinkClient.PushQA(ctx, rows); err != nil {
		logger.Error("sink delivery failed", "error", err)
		os.Exit(3)
	}

	return nil
}

// readTargets loads the target table from wherever resolve.targets points:
// an http(s) export URL, a snapshot database, or a local CSV file. An
// unreachable export URL yields zero targets rather than an error, so a
// sheet outage degrades to a no-op run.
func readTargets(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]model.Target, error) {
	loc := cfg.Resolve.Targets
	switch {
	case strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://"):
		return fetchTargetExport(ctx, cfg, loc, logger)

	case strings.HasSuffix(loc, ".db") || strings.HasSuffix(loc, ".sqlite"):
		st, err := store.Open(loc)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		targets, err := st.ReadTargets()
		if err != nil {
			return nil, err
		}
		if len(targets) > cfg.Limits.MaxTargets {
			targets = targets[:cfg.Limits.MaxTargets]
		}
		return targets, nil

	default:
		f, err := os.Open(loc)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return resolve.ReadTargets(f, cfg.Limits.MaxTargets)
	}
}

func fetchTargetExport(ctx context.Context, cfg *config.Config, url string, logger *slog.Logger) ([]model.Target, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	client := &http.Client{Timeout: cfg.Limits.ResolveTimeout}
	resp, err := client.Do(req)
	if err != nil {
		logger.Warn("target export unreachable", "url", url, "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("target export returned non-200", "url", url, "status", resp.StatusCode)
		return nil, nil
	}
	return resolve.ReadTargets(resp.Body, cfg.Limits.MaxTargets)
}
