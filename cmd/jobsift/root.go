package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelichko/jobsift/internal/adapter"
	"github.com/avelichko/jobsift/internal/config"
	"github.com/avelichko/jobsift/internal/model"
	"github.com/avelichko/jobsift/internal/pipeline"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsift",
	Short: "Job board sifter — collect, score, ship",
	Long:  "JobSift pulls postings from employer boards, scores them against a role taxonomy, and ships the keepers to a spreadsheet webhook.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSIFT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSIFT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSIFT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildTasks turns the enabled sources into pipeline tasks, one adapter each.
func buildTasks(cfg *config.Config, titleFilter model.TitleFilter, httpClient *http.Client, logger *slog.Logger) []pipeline.Task {
	var tasks []pipeline.Task
	for _, src := range cfg.Sources {
		if !src.Enabled {
			continue
		}

		var fetcher model.SourceFetcher
		switch src.Kind {
		case "greenhouse":
			fetcher = adapter.NewGreenhouseAdapter(src.Company, titleFilter, cfg.UserAgent, httpClient)
		case "lever":
			fetcher = adapter.NewLeverAdapter(src.Company, titleFilter, cfg.UserAgent, cfg.Limits.ExcerptLimit, httpClient)
		default:
			logger.Warn("unsupported source kind, skipping", "company", src.Company, "kind", src.Kind)
			continue
		}

		tasks = append(tasks, pipeline.Task{Source: src.Kind, Company: src.Company, Fetcher: fetcher})
		logger.Info("registered source", "company", src.Company, "kind", src.Kind)
	}
	return tasks
}
