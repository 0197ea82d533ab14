// pachinko runs the peg-board simulation in the terminal.
//
// Usage:
//
//	pachinko list              - List available boards
//	pachinko play [board]      - Play a board (default: pachinko)
//	pachinko menu              - Start menu to pick boards interactively
//	pachinko serve             - Start SSH server for remote play
//	pachinko scores <board>    - Show high scores and layout stats
//	pachinko simulate          - Run headless sessions and report scores
//	pachinko config            - Print the default config or list layouts
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pachinko/internal/core"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pachinko",
	Short: "Pachinko - drop balls through a peg board in your terminal",
	Long: `Pachinko launches balls up the right-hand lane of a peg board. They bounce
down through pins and fences and score each time one leaves through the bottom.

Available commands:
  list      - Show all available boards
  play      - Play a board directly
  menu      - Interactive board picker
  serve     - Start SSH server for remote play
  scores    - View high scores and per-layout statistics
  simulate  - Run headless sessions and print score statistics
  config    - Print the default config or list layouts

Examples:
  pachinko play
  pachinko play pachinko_classic --bounce wild
  pachinko play --layout narrow
  pachinko serve --ssh :2222
  pachinko simulate --runs 100 --balls 30`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// fail prints an error in the CLI's format and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
