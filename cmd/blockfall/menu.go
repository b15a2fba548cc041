package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for
high scores. Without --difficulty a preset selector follows the mode
choice. Press B when paused or after game over to return to the menu.

Examples:
  blockfall menu
  blockfall menu --fps 30
  blockfall menu --difficulty fixed --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
	menuCmd.Flags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name recorded with scores")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := checkDifficulty(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		difficulty := flagDifficulty
		if difficulty == "" {
			preset, quit, selErr := tui.RunDifficultySelector(cfg, config.DifficultyNormal)
			if selErr != nil {
				return selErr
			}
			if quit {
				return nil
			}
			if preset == "" {
				continue // back to the mode list
			}
			difficulty = string(preset)
		}
		applyGameFlags(flagConfig, difficulty)

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "mode", menuResult.GameID, "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("starting game", "mode", menuResult.GameID, "difficulty", difficulty, "player", flagPlayer)

		back, err := tui.Run(game, store, cfg, flagPlayer)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}
