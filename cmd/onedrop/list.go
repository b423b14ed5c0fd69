package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/one-drop/internal/games/onedrop"
	"github.com/vovakirdan/one-drop/internal/registry"
	"github.com/vovakirdan/one-drop/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playable layouts",
	Long: `Print every layout that can be passed to 'onedrop play', with its zone
count and the fastest recorded success from the run history.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	writeLayoutList(os.Stdout, registry.List(), store)
}

// writeLayoutList prints one row per layout. A nil store leaves the best
// column empty.
func writeLayoutList(out io.Writer, layouts []registry.GameInfo, store *storage.Store) {
	if len(layouts) == 0 {
		fmt.Fprintln(out, "No layouts registered.")
		return
	}

	idW := len("ID")
	for _, l := range layouts {
		idW = max(idW, len(l.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-5s  %-7s  %s\n", idW, "ID", "Zones", "Best", "Title")
	for _, l := range layouts {
		zones := "-"
		if layout, ok := onedrop.LayoutByID(l.ID); ok {
			zones = fmt.Sprint(len(layout.Zones))
		}
		best := "-"
		if store != nil {
			if t, ok, err := store.BestTime(l.ID); err == nil && ok {
				best = fmt.Sprintf("%.1fs", t)
			}
		}
		fmt.Fprintf(out, "  %-*s  %-5s  %-7s  %s\n", idW, l.ID, zones, best, l.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'onedrop play <id>' to start a run, or 'onedrop zones <id>' to inspect one.")
}
