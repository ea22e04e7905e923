package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/feedback"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a run ends, press B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - High scores
  Q            - Quit

Examples:
  dodge menu
  dodge menu --profile classic
  dodge menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	dcfg, err := gameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	locator, err := locatorFor(dcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, scores := openScores(dcfg, logger)
	if db != nil {
		defer db.Close()
	}

	svc := tui.Services{
		Scores:  scores,
		History: historyOf(db),
		Locator: locator,
		Sink:    feedback.NewLogSink(logger),
		Logger:  logger,
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg, dcfg, scores)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(scores, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID, dcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for every run unless one was given
		runtime := cfg
		if runtime.Seed == 0 {
			runtime.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(game, dcfg, svc, runtime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		logger.Info("run finished", "variant", game.ID(), "score", result.FinalScore)

		if !result.Back {
			break
		}
	}
}
