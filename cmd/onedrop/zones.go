package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/games/onedrop"
)

var zonesCmd = &cobra.Command{
	Use:   "zones [layout]",
	Short: "Show the zones and hazards of a layout",
	Long: `Print the zone table of a layout: each band's vertical extent and the
hazards placed in it. Randomized placements are drawn with --seed, so the
same seed shows the level a run with that seed would get.

Examples:
  onedrop zones
  onedrop zones onedrop_deep --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runZones,
}

func init() {
	zonesCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runZones(_ *cobra.Command, args []string) {
	layoutID := defaultLayout
	if len(args) > 0 {
		layoutID = args[0]
	}

	layout, ok := onedrop.LayoutByID(layoutID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", layoutID)
		fmt.Fprintln(os.Stderr, "Run 'onedrop list' to see available layouts.")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	level := onedrop.BuildLevel(layout, cfg.World.Width, cfg.World.ZoneHeight, rand.New(rand.NewSource(seed)))

	fmt.Printf("Zones - %s (%.0f x %.0f px, seed %d)\n", layout.Title, level.Width, level.Height, seed)
	fmt.Println()

	maxNameLen := 4 // "Zone" header
	for _, z := range level.Zones {
		if len(z.Name) > maxNameLen {
			maxNameLen = len(z.Name)
		}
	}

	fmt.Printf("  %-2s  %-*s  %-11s  %s\n", "#", maxNameLen, "Zone", "Y range", "Hazards")
	fmt.Printf("  %-2s  %-*s  %-11s  %s\n", "-", maxNameLen, "----", "-------", "-------")

	for _, z := range level.Zones {
		span := fmt.Sprintf("%.0f-%.0f", z.Top, z.Bottom)
		fmt.Printf("  %-2d  %-*s  %-11s  %s\n", z.Index+1, maxNameLen, z.Name, span, hazardSummary(level, z.Index))
	}
}

// hazardSummary lists the variants placed in a zone with their counts.
func hazardSummary(level *onedrop.Level, zone int) string {
	counts := make(map[string]int)
	for _, h := range level.Hazards {
		if h.Zone == zone {
			name := h.Variant.String()
			if h.Motion != nil {
				name = "moving " + strings.TrimPrefix(name, "moving ")
			}
			counts[name]++
		}
	}
	if len(counts) == 0 {
		return "-"
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		if counts[name] > 1 {
			parts[i] = fmt.Sprintf("%d %s", counts[name], name)
		} else {
			parts[i] = name
		}
	}
	return strings.Join(parts, ", ")
}
