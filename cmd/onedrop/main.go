// onedrop is a terminal game about a single water droplet falling through
// hostile zones to bring a seed to life.
//
// Usage:
//
//	onedrop list              - List available layouts
//	onedrop play [layout]     - Play a layout (default: onedrop)
//	onedrop menu              - Pick layouts interactively
//	onedrop zones [layout]    - Show the zones and hazards of a layout
//	onedrop scores [layout]   - Show best times
//	onedrop serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible layouts
//	--db <path>           - Set database path (default: XDG data home)
//	--log-level <level>   - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its layouts
	_ "github.com/vovakirdan/one-drop/internal/games/onedrop"
)

const defaultLayout = "onedrop"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onedrop",
	Short: "One Drop - guide a water droplet to the seed",
	Long: `One Drop is a terminal game. You are a single drop of water falling
through the sky, a polluted city and the soil below. Dodge what dries you
out, gather what feeds you and land on the seed to spark new life.

Available commands:
  list     - Show all available layouts
  play     - Play a layout directly
  menu     - Interactive layout picker
  zones    - Show the zones of a layout
  scores   - View best times
  serve    - Start SSH server for remote play

Examples:
  onedrop play
  onedrop play onedrop_deep --difficulty hard
  onedrop menu
  onedrop serve --ssh :2222
  onedrop scores`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging(flagLogLevel)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLogging()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default: XDG data home)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(zonesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
