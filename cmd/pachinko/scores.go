package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pachinko/internal/registry"
	"github.com/vovakirdan/tui-pachinko/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagRecent      int
	flagSessionID   string
	flagClear       bool
)

var errNoSession = errors.New("no such session")

var scoresCmd = &cobra.Command{
	Use:   "scores <board>",
	Short: "Show high scores for a board",
	Long: `Display the top high scores for the specified board, followed by
per-layout session statistics.

Examples:
  pachinko scores pachinko
  pachinko scores pachinko_classic --limit 20
  pachinko scores pachinko --all
  pachinko scores pachinko --recent 5
  pachinko scores pachinko --session 3f0c9a52-...
  pachinko scores pachinko --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded score")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show the N most recent sessions")
	scoresCmd.Flags().StringVar(&flagSessionID, "session", "", "Show one session by id")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and sessions for the board")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pachinko list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagClear:
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Fprintf(out, "Cleared scores and sessions for %s.\n", game.Title())
		}
	case flagSessionID != "":
		err = printSession(out, store, flagSessionID)
	case flagRecent > 0:
		err = printRecent(out, store, gameID, game.Title(), flagRecent)
	default:
		err = printScores(out, store, gameID, game.Title())
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

// printScores writes the summary, the score table and the layout statistics.
func printScores(w io.Writer, store *storage.Store, gameID, title string) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n", title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'pachinko play %s' to set the first high score!\n", gameID)
		return nil
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(w, "  %d games, best %d, average %.1f, last played %s\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetLayoutStats(gameID)
	if err != nil || len(stats) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-12s  %-8s  %-6s  %-8s  %s\n", "Layout", "Sessions", "Best", "Average", "Exit rate")
	fmt.Fprintf(w, "  %-12s  %-8s  %-6s  %-8s  %s\n", "------", "--------", "----", "-------", "---------")
	for _, l := range stats {
		fmt.Fprintf(w, "  %-12s  %-8d  %-6d  %-8.1f  %.1f%%\n",
			l.Layout, l.Sessions, l.BestScore, l.AvgScore, l.ExitRate()*100)
	}
	return nil
}

// printRecent writes the newest sessions, one per line.
func printRecent(w io.Writer, store *storage.Store, gameID, title string, limit int) error {
	sessions, err := store.RecentSessions(gameID, limit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Fprintf(w, "Recent Sessions - %s\n", title)
	fmt.Fprintln(w)
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-36s  %-10s  %-6s  %-11s  %s\n", "ID", "Layout", "Score", "Exits", "Date")
	fmt.Fprintf(w, "  %-36s  %-10s  %-6s  %-11s  %s\n", "--", "------", "-----", "-----", "----")
	for _, s := range sessions {
		fmt.Fprintf(w, "  %-36s  %-10s  %-6d  %-11s  %s\n",
			s.ID, s.Layout, s.Score, fmt.Sprintf("%d/%d", s.Exits, s.Launched), s.PlayedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// printSession writes every field of one session, including the seed that
// replays it.
func printSession(w io.Writer, store *storage.Store, id string) error {
	rec, err := store.SessionByID(id)
	if err != nil {
		return fmt.Errorf("retrieving session: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%q: %w", id, errNoSession)
	}

	fmt.Fprintf(w, "Session  %s\n", rec.ID)
	fmt.Fprintf(w, "Board    %s\n", rec.GameID)
	fmt.Fprintf(w, "Layout   %s\n", rec.Layout)
	fmt.Fprintf(w, "Score    %d\n", rec.Score)
	fmt.Fprintf(w, "Balls    %d launched, %d exited\n", rec.Launched, rec.Exits)
	fmt.Fprintf(w, "Seed     %d\n", rec.Seed)
	fmt.Fprintf(w, "Duration %s\n", rec.Duration)
	fmt.Fprintf(w, "Played   %s\n", rec.PlayedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "\nReplay with: pachinko play %s --layout %s --seed %d\n", rec.GameID, rec.Layout, rec.Seed)
	return nil
}
