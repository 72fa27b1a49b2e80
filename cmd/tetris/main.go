// tetris is a falling-block puzzle for the terminal, playable locally or
// over SSH.
//
// Usage:
//
//	tetris play              - Play a game directly
//	tetris menu              - Start the menu (play, history, quit)
//	tetris serve             - Start SSH server for remote play
//	tetris history           - Show recorded sessions
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.tetris/history.db)
//	--config <path>        - Load game config from a YAML file
//	--difficulty <preset>  - Gravity preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris drops one piece at a time into a 10x20 well. Steer it left
and right, rotate it, and watch it settle.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu with session history
  serve    - Start SSH server for remote play
  history  - View recorded sessions

Examples:
  tetris play
  tetris play --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris history --best

Flag defaults can also come from the environment or a .env file in the
working directory: TETRIS_DB, TETRIS_CONFIG, TETRIS_SSH_ADDR, TETRIS_HOST_KEY.`,
	PersistentPreRunE: applyEnv,
}

// envFlags maps flags to the environment variables that provide their
// defaults.
var envFlags = map[string]string{
	"db":       config.EnvDBPath,
	"config":   config.EnvConfigPath,
	"ssh":      config.EnvSSHAddr,
	"host-key": config.EnvHostKey,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/history.db", "Path to session history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Gravity preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// applyEnv loads .env and fills every flag the user did not set from its
// environment variable.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := envFlags[f.Name]
		if !ok || f.Changed || setErr != nil {
			return
		}
		if v, ok := config.LookupEnv(key); ok {
			if err := f.Value.Set(v); err != nil {
				setErr = fmt.Errorf("invalid %s: %w", key, err)
			}
		}
	})
	return setErr
}

// applyGameFlags validates --config and --difficulty and hands them to the
// game package before any game is created.
func applyGameFlags() error {
	if flagConfig != "" {
		if _, err := config.LoadTetris(flagConfig); err != nil {
			return err
		}
	}
	if err := tetris.SetDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	tetris.SetConfigPath(flagConfig)
	return nil
}

// tickRate rejects non-positive --fps values.
func tickRate() (int, error) {
	if flagFPS <= 0 {
		return 0, fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return flagFPS, nil
}
