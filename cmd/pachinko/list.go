package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/layouts"
	"github.com/vovakirdan/tui-pachinko/internal/registry"
	"github.com/vovakirdan/tui-pachinko/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards and layouts",
	Long:  `Shows the registered boards and every layout that --layout accepts.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	stats := playedStats()

	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "ID", "Title", "Played")
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "--", "-----", "------")

	for _, g := range games {
		played := "-"
		if gs, ok := stats[g.ID]; ok {
			played = fmt.Sprintf("%d games, best %d", gs.GamesCount, gs.HighScore)
		}
		fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, g.ID, g.Title, played)
	}

	cfg, err := config.LoadPachinko("")
	if err != nil {
		cfg = config.DefaultPachinkoConfig()
	}
	names, err := layouts.Names(config.ExpandHome(cfg.Board.LayoutDir))
	if err == nil && len(names) > 0 {
		fmt.Println()
		fmt.Println("Layouts:")
		for _, n := range names {
			fmt.Printf("  %s\n", n)
		}
	}

	fmt.Println()
	fmt.Println("Run 'pachinko play <id> [--layout <name>]' to play.")
}

// playedStats reads per-board stats from an existing scores database.
// A missing or unreadable database gives no stats.
func playedStats() map[string]*storage.GameStats {
	if _, err := os.Stat(config.ExpandHome(flagDBPath)); err != nil {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return nil
	}
	return stats
}
