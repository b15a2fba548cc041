package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new game would use, as YAML.

The file is resolved in this order: --config, ~/.blockfall/configs/blockfall.yaml,
./configs/blockfall.yaml, then the built-in defaults. --difficulty, or the
file's difficulty.preset without it, is applied on top and baked into the
gravity keys. Redirect the output to start a custom config file.

Examples:
  blockfall config
  blockfall config --difficulty hard > ~/.blockfall/configs/blockfall.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	addGameFlags(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if err := checkDifficulty(); err != nil {
		return err
	}
	applyGameFlags(flagConfig, flagDifficulty)

	cfg, err := blockfall.LoadConfig()
	if err != nil {
		return err
	}
	// The gravity keys already carry the preset; keeping its name would
	// apply it a second time when the output is loaded back.
	cfg.Difficulty.Preset = ""
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
