package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/one-drop/internal/registry"
	"github.com/vovakirdan/one-drop/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [layout]",
	Short: "Show best times for a layout",
	Long: `Display the 10 fastest successful runs for the specified layout
(default: onedrop), followed by run statistics.

Examples:
  onedrop scores
  onedrop scores onedrop_deep`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	layoutID := defaultLayout
	if len(args) > 0 {
		layoutID = args[0]
	}

	if !registry.Exists(layoutID) {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", layoutID)
		fmt.Fprintln(os.Stderr, "Run 'onedrop list' to see available layouts.")
		os.Exit(1)
	}

	game, err := registry.Create(layoutID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.BestTimes(layoutID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Times - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No drop has reached the seed yet.")
		fmt.Println()
		fmt.Printf("Play 'onedrop play %s' to set the first time!\n", layoutID)
	} else {
		fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "Rank", "Time", "Player", "Date")
		fmt.Printf("  %-4s  %-8s  %-10s  %s\n", "----", "----", "------", "----")

		for i, r := range runs {
			player := r.Player
			if player == "" {
				player = "local"
			}
			fmt.Printf("  %-4d  %-8s  %-10s  %s\n", i+1, fmt.Sprintf("%.1fs", r.Seconds), player, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetLayoutStats(layoutID)
	if err != nil || stats.Runs == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Sparked: %d (%.0f%%)", stats.Runs, stats.Successes, stats.SuccessRate()*100)
	if stats.Successes > 0 {
		fmt.Printf("  Avg: %.1fs", stats.AvgTime)
	}
	fmt.Println()
}
