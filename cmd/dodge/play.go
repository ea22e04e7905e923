package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/feedback"
	"github.com/vovakirdan/lane-dodge/internal/games/dodge"
	"github.com/vovakirdan/lane-dodge/internal/input"
	"github.com/vovakirdan/lane-dodge/internal/platform/sound"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

var (
	flagConfig  string
	flagProfile string
	flagTilt    string
	flagSound   bool
	flagVolume  float64
	flagBell    bool
	flagLat     float64
	flagLng     float64
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: dodge).

Controls:
  Left/Right, A/D, H/L  - Change lane
  F / S / N             - Fast, slow, normal speed
  M/Esc                 - Menu
  P/Space               - Pause
  C                     - Toggle buttons / tilt sensors
  R                     - Restart (after game over)
  B                     - Back (after game over)
  Q/Ctrl+C              - Quit

Tilt input:
  --tilt reads accelerometer samples, one "x y" pair per line, from a
  file, a named pipe or "-" for standard input. Press C to steer with them.

Examples:
  dodge play
  dodge play dodge_classic
  dodge play --profile classic --sound
  dodge play --tilt /tmp/accel.fifo
  dodge play --lat 52.52 --lng 13.40
  dodge play --config ./my-dodge.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagTilt, "tilt", "", `Read tilt samples from this file ("-" for stdin)`)
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume (0..1)")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on crashes")
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagProfile, "profile", "", "Speed profile: modern, classic")
	cmd.Flags().Float64Var(&flagLat, "lat", 0, "Latitude recorded with high scores")
	cmd.Flags().Float64Var(&flagLng, "lng", 0, "Longitude recorded with high scores")
}

// gameConfig loads the config and applies the flags shared by play and menu.
func gameConfig(cmd *cobra.Command) (config.DodgeConfig, error) {
	cfg, err := loadConfig(flagConfig, flagProfile)
	if err != nil {
		return cfg, err
	}

	latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
	if latSet != lngSet {
		return cfg, fmt.Errorf("--lat and --lng must be given together")
	}
	if latSet {
		config.ApplyLocation(&cfg, flagLat, flagLng)
	}

	return cfg, cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := dodge.IDModern
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'dodge list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := gameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if note := profileNote(gameID, flagProfile); note != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", note)
	}

	locator, err := locatorFor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	db, scores := openScores(cfg, logger)
	if db != nil {
		defer db.Close()
	}

	svc := tui.Services{
		Scores:  scores,
		History: historyOf(db),
		Locator: locator,
		Logger:  logger,
	}
	sinks := feedback.Multi{feedback.NewLogSink(logger)}

	if flagSound {
		player := sound.NewPlayer(flagVolume, logger)
		if err := player.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		}
		defer player.Close()
		sinks = append(sinks, player)
	}
	svc.Sink = sinks

	if flagBell {
		svc.Bell = os.Stdout
	}

	var opts []tea.ProgramOption
	if flagTilt != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		feed, closeFeed, err := startTiltFeed(ctx, flagTilt, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening tilt feed: %v\n", err)
			os.Exit(1)
		}
		defer closeFeed()
		svc.Tilt = feed

		if flagTilt == "-" {
			// Samples arrive on stdin, so keys come from the terminal.
			opts = append(opts, tea.WithInputTTY())
		}
	}

	result, err := tui.Run(game, cfg, svc, runtimeConfig(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session over", "variant", gameID, "score", result.FinalScore)
}

// profileNote explains a --profile the variant does not honor. The classic
// variant is defined by the classic profile.
func profileNote(gameID, profile string) string {
	if gameID != dodge.IDClassic || profile == "" || profile == config.ProfileClassic {
		return ""
	}
	return fmt.Sprintf("%s always runs the %s profile, ignoring --profile %s", gameID, config.ProfileClassic, profile)
}

// startTiltFeed starts reading samples from path in the background.
func startTiltFeed(ctx context.Context, path string, logger *log.Logger) (<-chan input.Sample, func(), error) {
	var r io.ReadCloser = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		r = f
	}

	feed := make(chan input.Sample, 16)
	go func() {
		if err := input.ReadSamples(ctx, r, feed, logger); err != nil && ctx.Err() == nil {
			logger.Warn("tilt feed stopped", "err", err)
		}
	}()

	closer := func() {
		if path != "-" {
			_ = r.Close()
		}
	}
	return feed, closer, nil
}
