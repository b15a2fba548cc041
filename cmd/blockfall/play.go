package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: blockfall).

Controls:
  Left/Right, A/D, H/L  - Move
  Up, W, X, K           - Rotate
  Down, S, J            - Soft drop
  Space                 - Hard drop
  C, Shift+Tab          - Hold
  P/Esc                 - Pause
  N                     - New game
  R                     - Restart (after game over)
  Ctrl+S                - Screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Slower gravity, speeds up with level
  normal - Standard gravity curve
  hard   - Faster gravity, speeds up with level
  fixed  - Gravity never speeds up

Examples:
  blockfall play
  blockfall play blockfall_classic
  blockfall play --difficulty hard
  blockfall play --config ./my-blockfall.yaml --player ada`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name recorded with scores")
}

// addGameFlags registers the flags shared by every command that builds games.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.DefaultPlayer
}

// checkDifficulty rejects unknown presets before any screen is drawn.
func checkDifficulty() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	return nil
}

// openStore opens the score database. Failure is logged and play goes on
// without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blockfall.IDBag7
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blockfall list' to see available modes)", gameID)
	}
	if err := checkDifficulty(); err != nil {
		return err
	}

	applyGameFlags(flagConfig, flagDifficulty)
	if _, err := blockfall.LoadConfig(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	logger.Info("starting game", "mode", gameID, "player", flagPlayer, "seed", cfg.Seed)

	if _, err := tui.Run(game, store, cfg, flagPlayer); err != nil {
		return err
	}
	return nil
}
