package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/highscore"
	"github.com/vovakirdan/lane-dodge/internal/storage"
)

var (
	flagHistory      bool
	flagHistoryLimit int
	flagClearHistory bool
	flagScoresConfig string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and run history",
	Long: `Display the ranked high-score list shared by all variants.

With --history, also list recent runs and per-variant statistics,
optionally filtered to one variant. --clear-history deletes run history
(for one variant when given) and leaves the high-score list untouched.

Examples:
  dodge scores
  dodge scores --history
  dodge scores dodge_classic --history --limit 5
  dodge scores --clear-history`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show recent runs and statistics")
	scoresCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "Delete run history")
	scoresCmd.Flags().StringVar(&flagScoresConfig, "config", "", "Path to custom game config YAML")
}

func runScores(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig(flagScoresConfig, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if flagClearHistory {
		n, err := db.ClearRuns(variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			return
		}
		fmt.Printf("Deleted %d runs.\n", n)
		return
	}

	scores := highscore.New(db.List(cfg.Scores.List),
		highscore.WithCapacity(cfg.Scores.Capacity),
		highscore.WithLogger(logger),
	)
	top, err := scores.Top(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	printTop(top)

	if flagHistory {
		printHistory(db, variant)
	}
}

func printTop(top []highscore.Record) {
	fmt.Println("High Scores")
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dodge play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-21s  %s\n", "Rank", "Score", "Location", "Date")
	fmt.Printf("  %-4s  %-8s  %-21s  %s\n", "----", "-----", "--------", "----")

	for i, r := range top {
		where := "-"
		if lat, lng, ok := r.Location(); ok {
			where = fmt.Sprintf("%.4f, %.4f", lat, lng)
		}
		fmt.Printf("  %-4d  %-8d  %-21s  %s\n", i+1, r.Score, where, r.At().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", top[0].Score)
}

func printHistory(db *storage.Store, variant string) {
	runs, err := db.RecentRuns(variant, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-14s  %-8s  %-6s  %-8s  %s\n", "ID", "Variant", "Score", "Ticks", "Profile", "Date")
	fmt.Printf("  %-8s  %-14s  %-8s  %-6s  %-8s  %s\n", "--", "-------", "-----", "-----", "-------", "----")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-14s  %-8d  %-6d  %-8s  %s\n",
			r.ID[:min(8, len(r.ID))], r.Variant, r.Score, r.Ticks, r.SpeedProfile,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := db.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Printf("  %-14s  %-6s  %-8s  %s\n", "Variant", "Runs", "Best", "Average")
	fmt.Printf("  %-14s  %-6s  %-8s  %s\n", "-------", "----", "----", "-------")
	for _, s := range stats {
		if variant != "" && s.Variant != variant {
			continue
		}
		fmt.Printf("  %-14s  %-6d  %-8d  %.1f\n", s.Variant, s.Runs, s.Best, s.Average)
	}
}
