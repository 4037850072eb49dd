package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrLobotomist/test-pipeline/internal/config"
	"github.com/MrLobotomist/test-pipeline/internal/logging"
	"github.com/MrLobotomist/test-pipeline/internal/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions interactively",
	Long: `Evaluate expressions interactively.

Accepts the same forms as eval: "2 + 3", "divide 7 2", "5!".
Edits to the config file are picked up while the prompt is open.
Type clear to reset the history, quit or esc to leave.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	// Log lines would corrupt the terminal, so only file logging is kept.
	replLogger := logger
	if cfg.Log.GetFile() == "" {
		replLogger = logging.NewNop()
	}

	opts := []tui.Option{tui.WithLogger(replLogger)}
	if cmd.Flags().Changed("precision") {
		opts = append(opts, tui.WithPrecision(precision))
	}

	if info, err := os.Stat(filepath.Dir(configPath)); err == nil && info.IsDir() {
		w := config.NewWatcher(configPath)
		if err := w.Start(); err != nil {
			replLogger.Warn("config watch disabled", zap.Error(err))
		} else {
			defer w.Stop()
			opts = append(opts, tui.WithReloads(w.Reloads()))
		}
	}

	if err := tui.Run(tui.New(cfg, opts...)); err != nil {
		return fmt.Errorf("run interactive prompt: %w", err)
	}
	return nil
}
