package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/games/onedrop"
	"github.com/vovakirdan/one-drop/internal/platform/tui"
	"github.com/vovakirdan/one-drop/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a layout from an interactive menu",
	Long: `Start One Drop in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a layout, then pick a
difficulty. When a run is over or paused, B/Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Run history
  Q            - Quit

Examples:
  onedrop menu
  onedrop menu --fps 30
  onedrop menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	exitOnBadFlags()

	store := openStore()
	cfg := terminalConfig()
	onedrop.SetConfigPath(flagConfig)

	difficulty := config.ParsePreset(flagDifficulty)

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, hErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if hErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", hErr)
			}
			if goBack {
				continue
			}
			break // User quit from history
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		preset, err := tui.RunDifficultySelector(game.Title(), difficulty, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if preset == "" {
			continue // Back to menu
		}
		difficulty = preset
		onedrop.SetDifficultyPreset(string(preset))

		// Fresh seed per run unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, logger, tui.WithMenu())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !back {
			break // Quit from the game
		}
	}

	if store != nil {
		store.Close()
	}
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal, hard")
}
