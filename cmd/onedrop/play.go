package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
	"github.com/vovakirdan/one-drop/internal/games/onedrop"
	"github.com/vovakirdan/one-drop/internal/platform/tui"
	"github.com/vovakirdan/one-drop/internal/registry"
	"github.com/vovakirdan/one-drop/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a layout",
	Long: `Start a run on the specified layout (default: onedrop).

Controls:
  Left/Right, A/D, H/L  - Drift sideways
  Up/W/K                - Jump off a solid surface
  R/Space               - Restart the run (any time)
  P                     - Pause
  Ctrl+S                - Save a text screenshot
  Ctrl+Y                - Copy a run summary
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Hazards dry you out slower, boons feed you more
  normal - Default tuning
  hard   - Hazards bite harder, boons are weaker

Examples:
  onedrop play
  onedrop play onedrop_deep
  onedrop play --difficulty hard
  onedrop play --config ./my-onedrop.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalConfig builds the runtime config from the flags and the terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// validateRunFlags rejects a --config that does not load and a --difficulty
// that names no preset.
func validateRunFlags(configPath, difficulty string) error {
	if difficulty != "" && config.ParsePreset(difficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", difficulty)
	}
	if _, err := config.Load(configPath); err != nil {
		return err
	}
	return nil
}

// exitOnBadFlags prints a flag validation error and exits.
func exitOnBadFlags() {
	if err := validateRunFlags(flagConfig, flagDifficulty); err != nil {
		logger.Error("invalid run flags", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the run history, degrading to no history on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("could not open run history", "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := defaultLayout
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'onedrop list' to see available layouts.")
		os.Exit(1)
	}
	exitOnBadFlags()

	onedrop.SetConfigPath(flagConfig)
	onedrop.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, terminalConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
