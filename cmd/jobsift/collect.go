package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelichko/jobsift/internal/filter"
	"github.com/avelichko/jobsift/internal/model"
	"github.com/avelichko/jobsift/internal/pipeline"
	"github.com/avelichko/jobsift/internal/score"
	"github.com/avelichko/jobsift/internal/sink"
	"github.com/avelichko/jobsift/internal/store"
)

var (
	collectDryRun   bool
	collectSnapshot string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch, score and ship postings",
	Long:  "Runs the ingestion pipeline once: fetch every enabled source, filter and score titles, dedup, rank, and POST the batch to the sink.",
	RunE:  runCollect,
}

func init() {
	collectCmd.Flags().BoolVar(&collectDryRun, "dry-run", false, "run the pipeline but log the batch instead of POSTing it")
	collectCmd.Flags().StringVar(&collectSnapshot, "snapshot", "", "also write the shipped batch to a sqlite snapshot at this path")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	// Dry-run never touches the sink, so the endpoint may be absent.
	if !collectDryRun {
		if err := cfg.ValidateCollect(); err != nil {
			logger.Error("invalid config", "error", err)
			os.Exit(2)
		}
	}

	titleFilter, err := filter.New(cfg.Rules.Include, cfg.Rules.Exclude)
	if err != nil {
		logger.Error("bad title rules", "error", err)
		os.Exit(2)
	}
	scorer, err := score.New(cfg.Rules.Include, cfg.Rules.Skills, cfg.Rules.PreferredLocations)
	if err != nil {
		logger.Error("bad scoring rules", "error", err)
		os.Exit(2)
	}

	httpClient := &http.Client{Timeout: cfg.Limits.FetchTimeout}
	tasks := buildTasks(cfg, titleFilter, httpClient, logger)
	if len(tasks) == 0 {
		logger.Error("no enabled sources to collect")
		os.Exit(2)
	}

	logger.Info("config loaded",
		"sources", len(tasks),
		"include_rules", len(cfg.Rules.Include),
		"exclude_rules", len(cfg.Rules.Exclude),
		"min_score", cfg.Limits.MinScore,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.New(titleFilter, scorer, cfg.Limits.MaxConcurrent, cfg.Limits.FetchTimeout, cfg.Limits.MinScore, cfg.Limits.MaxRows, logger)
	batch := runner.Run(ctx, tasks)
	ranAt := time.Now()

	if collectDryRun {
		logger.Info("dry-run: skipping sink delivery", "rows", len(batch))
		for _, p := range batch {
			logger.Info("would ship",
				"score", p.FitScore,
				"company", p.Company,
				"title", p.Title,
				"url", p.URL,
			)
		}
	} else {
		sinkClient := sink.New(cfg.Sink.Endpoint, cfg.UserAgent, &http.Client{Timeout: cfg.Limits.SinkTimeout}, logger)
		if err := sinkClient.PushRows(ctx, batch); err != nil {
			logger.Error("sink delivery failed", "error", err)
			os.Exit(3)
		}
	}

	if collectSnapshot != "" {
		if err := writeSnapshot(collectSnapshot, batch, ranAt); err != nil {
			logger.Error("snapshot write failed", "path", collectSnapshot, "error", err)
			os.Exit(1)
		}
		logger.Info("snapshot written", "path", collectSnapshot, "rows", len(batch))
	}

	return nil
}

func writeSnapshot(path string, batch []model.Posting, ranAt time.Time) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteSnapshot(batch, ranAt)
}
