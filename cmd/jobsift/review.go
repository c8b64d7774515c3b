package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelichko/jobsift/internal/review"
	"github.com/avelichko/jobsift/internal/store"
)

var reviewSnapshot string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse the last shipped batch (TUI)",
	Long:  "Opens the snapshot written by `collect --snapshot` in an interactive list with a detail view.",
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewSnapshot, "snapshot", "jobsift.db", "path to the snapshot database")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	st, err := store.Open(reviewSnapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open snapshot: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	rows, ranAt, err := st.ReadSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read snapshot: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("Snapshot is empty — run `jobsift collect --snapshot <path>` first.")
		return nil
	}

	return review.Run(rows, ranAt)
}
