package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pachinko/internal/config"
	"github.com/vovakirdan/tui-pachinko/internal/games/pachinko"
	"github.com/vovakirdan/tui-pachinko/internal/platform/tui"
	"github.com/vovakirdan/tui-pachinko/internal/registry"
	"github.com/vovakirdan/tui-pachinko/internal/storage"
)

var (
	flagConfig string
	flagBounce string
	flagLayout string
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (pachinko when omitted).

Controls:
  Space/Enter - Launch a ball
  P/Esc       - Pause
  R           - Restart (after game over)
  B           - Back (when paused or after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Bounce presets:
  soft   - Low restitution, balls settle quickly
  lively - The default board feel
  wild   - High restitution and a stronger launch spread

Examples:
  pachinko play
  pachinko play pachinko_classic
  pachinko play --bounce wild
  pachinko play --layout narrow
  pachinko play --config ./my-pachinko.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom pachinko config YAML")
		c.Flags().StringVar(&flagBounce, "bounce", "", "Bounce preset: soft, lively, wild")
		c.Flags().StringVar(&flagLayout, "layout", "", "Layout name (built-in or from the layout directory)")
	}
}

// parseBounceFlag maps --bounce to a preset. Empty means no preset.
func parseBounceFlag() (config.BouncePreset, error) {
	if flagBounce == "" {
		return "", nil
	}
	preset, ok := config.ParseBouncePreset(flagBounce)
	if !ok {
		return "", fmt.Errorf("unknown bounce preset %q", flagBounce)
	}
	return preset, nil
}

// applyGameFlags passes the config, bounce and layout flags to the games.
func applyGameFlags() error {
	preset, err := parseBounceFlag()
	if err != nil {
		return err
	}
	pachinko.SetConfigPath(flagConfig)
	pachinko.SetBouncePreset(string(preset))
	pachinko.SetLayout(flagLayout)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "pachinko"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pachinko list' to see available boards.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
