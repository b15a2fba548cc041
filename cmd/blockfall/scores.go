package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagLimit       int
	flagAllScores   bool
	flagStats       bool
	flagClear       bool
	flagScorePlayer string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores for the given mode (default: blockfall).

Examples:
  blockfall scores
  blockfall scores blockfall_classic --limit 25
  blockfall scores --player ada
  blockfall scores --stats
  blockfall scores blockfall --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show a summary for every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().StringVar(&flagScorePlayer, "player", "", "Also show this player's best")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagStats {
		return printStats(store)
	}

	gameID := blockfall.IDBag7
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blockfall list' to see available modes)", gameID)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "mode", gameID)
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	var scores []storage.ScoreRecord
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-3s  %-12s  %s\n", "Rank", "Score", "Lines", "Lvl", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-3s  %-12s  %s\n", "----", "-----", "-----", "---", "------", "----")
	for i, s := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-3d  %-12s  %s\n",
			i+1, s.Score, s.Lines, s.Level, s.Player, s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if flagScorePlayer != "" {
		best, err := store.PlayerBest(gameID, flagScorePlayer)
		if err != nil {
			return err
		}
		fmt.Printf("Best for %s: %d\n", flagScorePlayer, best)
	}
	return nil
}

func printStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %-6s  %-8s  %-8s  %-7s  %-3s  %s\n", "Mode", "Games", "Best", "Avg", "Lines", "Lvl", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-18s  %-6d  %-8d  %-8.0f  %-7d  %-3d  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.TotalLines, s.BestLevel, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
