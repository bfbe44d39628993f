// snake is the classic snake game for the terminal, a desktop window and
// SSH.
//
// Usage:
//
//	snake [play]     - Play in the terminal (default)
//	snake window     - Play in a desktop window
//	snake serve      - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: ~/.snake/snake.yaml, ./configs/snake.yaml)
//	--seed <value>      - RNG seed for reproducible gameplay
//	--rows, --cols      - Override the board size
//	--sound             - Enable sound cues
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	goerrors "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagRows     int
	flagCols     int
	flagSound    bool
	flagLogFile  string
	flagLogLevel string
	flagName     string
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "snake crashed:")
			fmt.Fprintln(os.Stderr, goerrors.Wrap(r, 2).ErrorStack())
			os.Exit(2)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - eat apples, grow, don't bite yourself",
	Long: `Snake is the classic game played on a walled board. Eat apples to grow
and score points; the snake speeds up as the score climbs. Filling the
whole board wins.

Available commands:
  play     - Play in the terminal (default)
  window   - Play in a desktop window
  serve    - Start SSH server for remote play

Examples:
  snake
  snake --seed 42 --rows 20 --cols 20
  snake window --sound
  snake serve --ssh :2222 --config ./snake.yaml`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	defaultName := os.Getenv("USER")
	if defaultName == "" {
		defaultName = "player"
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagRows, "rows", 0, "Board rows including walls (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagCols, "cols", 0, "Board columns including walls (0 = from config)")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Enable sound cues")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", defaultName, "Player name shown on the leaderboard")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the game config and applies command line overrides.
// path is the file the config came from, empty for the embedded default.
func loadConfig(cmd *cobra.Command) (cfg config.SnakeConfig, path string, err error) {
	cfg, path, err = config.Load(flagConfig)
	if err != nil {
		return cfg, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Grid.Rows = flagRows
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols = flagCols
	}
	if flags.Changed("sound") {
		cfg.Audio.Enabled = flagSound
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// newLogger builds a logger writing to the --log-file, or to fallback when
// no file is given. The returned func releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closeLog := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeLog, nil
}
