package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagBest  bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded sessions",
	Long: `Display recorded sessions with a summary line.

Sessions are listed newest first; --best orders them by pieces locked.
A * after the locked count marks a piece that spawned over settled blocks.

Examples:
  tetris history
  tetris history --best --limit 5
  tetris history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagBest, "best", false, "Order by pieces locked instead of date")
	historyCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded sessions")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(tetris.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	var sessions []storage.SessionRecord
	if flagBest {
		sessions, err = store.BestSessions(tetris.GameID, flagLimit)
	} else {
		sessions, err = store.RecentSessions(tetris.GameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	if flagBest {
		fmt.Println("Best Sessions - Tetris")
	} else {
		fmt.Println("Recent Sessions - Tetris")
	}
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-8s  %-12s  %s\n", "#", "Locked", "Pieces", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-8s  %-12s  %s\n", "-", "------", "------", "----", "------", "----")

	for i, s := range sessions {
		locked := strconv.Itoa(s.Locked)
		if s.TopOut {
			locked += "*"
		}
		fmt.Printf("  %-4d  %-7s  %-6d  %-8s  %-12s  %s\n",
			i+1, locked, s.Spawned, s.Duration.Round(time.Second), s.Player,
			s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(tetris.GameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Sessions: %d  Best: %d  Average: %.1f  Total ticks: %d\n",
		stats.Sessions, stats.MaxLocked, stats.AvgLocked, stats.TotalTicks)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}
