package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/layouts"
)

var flagLayoutDir string

var configCmd = &cobra.Command{
	Use:   "config [board]",
	Short: "Print the default config for a board",
	Long: `Print the embedded default YAML config. Save it to
~/.arcade/configs/pachinko.yaml or pass it with --config to customise play.

Examples:
  pachinko config > ~/.arcade/configs/pachinko.yaml
  pachinko config pachinko_classic
  pachinko config layouts`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

var configLayoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List layouts and where they come from",
	Run:   runConfigLayouts,
}

func init() {
	configLayoutsCmd.Flags().StringVar(&flagLayoutDir, "dir", "", "Layout directory (default: from config)")
	configCmd.AddCommand(configLayoutsCmd)
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := "pachinko"
	if len(args) == 1 {
		gameID = args[0]
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		fail("no default config for %q", gameID)
	}
	os.Stdout.Write(data)
}

func runConfigLayouts(_ *cobra.Command, _ []string) {
	dir := flagLayoutDir
	if dir == "" {
		cfg, err := config.LoadPachinko("")
		if err != nil {
			cfg = config.DefaultPachinkoConfig()
		}
		dir = cfg.Board.LayoutDir
	}
	dir = config.ExpandHome(dir)

	builtin, err := layouts.Builtin().LoadAll()
	if err != nil {
		fail("loading built-in layouts: %v", err)
	}
	user, err := layouts.NewLoader(dir).LoadAll()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", dir, err)
	}

	fmt.Printf("  %-12s  %-8s  %-9s  %s\n", "Name", "Min size", "Vertices", "Source")
	fmt.Printf("  %-12s  %-8s  %-9s  %s\n", "----", "--------", "--------", "------")
	overridden := make(map[string]bool, len(user))
	for _, l := range user {
		overridden[l.Name] = true
		printLayout(l, filepath.Join(dir, l.FilePath))
	}
	for _, l := range builtin {
		if overridden[l.Name] {
			continue
		}
		printLayout(l, "built-in")
	}
}

func printLayout(l layouts.Layout, source string) {
	size := fmt.Sprintf("%gx%g", l.MinWidth, l.MinHeight)
	fmt.Printf("  %-12s  %-8s  %-9d  %s\n", l.Name, size, len(l.Boundary), source)
}
