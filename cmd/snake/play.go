package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play Snake in the current terminal.

Controls:
  W/A/S/D, arrows, H/J/K/L  - Steer
  Enter/Space/R             - Start (and restart after the game ends)
  P/Esc                     - Pause
  Tab                       - Leaderboard
  Q/Ctrl+C                  - Quit

The built-in 30x30 board needs a 60x33 terminal. On smaller terminals it
shrinks to fit, unless the size comes from --rows/--cols or a config file.

Examples:
  snake play
  snake play --seed 7 --config ./snake.yaml
  snake play --menu`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var flagMenu bool

func init() {
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the board size from a menu before playing")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	if flagMenu {
		choice, menuErr := tui.RunSizeSelector(tui.BoardPresets(cfg.Grid, width, height), rc)
		if menuErr != nil {
			return fmt.Errorf("error running menu: %w", menuErr)
		}
		// Player quit from the menu
		if choice == nil {
			return nil
		}
		cfg.Grid.Rows, cfg.Grid.Cols = choice.Rows, choice.Cols
		logger.Debug("board selected", "preset", choice.Name, "rows", choice.Rows, "cols", choice.Cols)
	} else if path == "" && !cmd.Flags().Changed("rows") && !cmd.Flags().Changed("cols") {
		// The built-in board gives way to small terminals; a board the player
		// asked for is kept and the game asks for a bigger window instead
		if grid, shrunk := tui.ShrinkToFit(cfg.Grid, width, height); shrunk {
			logger.Info("board shrunk to fit the terminal", "rows", grid.Rows, "cols", grid.Cols)
			cfg.Grid = grid
		}
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open leaderboard", "error", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	player := audio.NewPlayer(cfg.Audio, logger)
	defer player.Close()

	game := snake.New(cfg)
	game.Subscribe(tui.EventLogger(logger))
	game.Subscribe(player)

	if err := tui.Run(game, store, rc, flagName, logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
