package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/platform/canvas"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a window and play Snake with pixel tiles. The tile size and colours
come from the palette section of the config.

Controls:
  W/A/S/D, arrows, H/J/K/L  - Steer
  Enter/Space/R             - Start (and restart after the game ends)
  Q/Esc                     - Quit (Esc closes the window)`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open leaderboard", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	player := audio.NewPlayer(cfg.Audio, logger)
	defer player.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return canvas.Run(canvas.Options{
		Config:    cfg,
		Seed:      seed,
		Player:    flagName,
		Store:     store,
		Listeners: []snake.Listener{tui.EventLogger(logger), player},
		Logger:    logger,
	})
}
