package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective matching rules",
	Long:  "Reads the config and prints the include/exclude title rules, skill vocabulary and preferred locations after defaults are applied.",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	printSection := func(name string, items []string) {
		fmt.Printf("%s (%d):\n", name, len(items))
		for _, it := range items {
			fmt.Printf("  %s\n", it)
		}
		fmt.Println()
	}

	printSection("Include titles", cfg.Rules.Include)
	printSection("Exclude titles", cfg.Rules.Exclude)
	printSection("Skills", cfg.Rules.Skills)
	printSection("Preferred locations", cfg.Rules.PreferredLocations)

	fmt.Printf("Postings ship at score ≥ %d.\n", cfg.Limits.MinScore)
	return nil
}
