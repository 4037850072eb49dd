// Package cmd contains the cobra commands for the calc binary.
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrLobotomist/test-pipeline/internal/calculator"
	"github.com/MrLobotomist/test-pipeline/internal/config"
	"github.com/MrLobotomist/test-pipeline/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// Exit codes.
const (
	ExitSuccess         = 0
	ExitFailure         = 1
	ExitUsage           = 2
	ExitInvalidArgument = 3
)

var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

var (
	configPath string
	jsonOutput bool
	precision  int

	cfg    = config.Default()
	logger = logging.NewNop()

	buildLogger = logging.New
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Add, subtract, multiply, divide and take factorials",
	Long: `calc evaluates basic arithmetic and factorials.

Examples:
  calc add 2 3
  calc divide 7 2 --precision 2
  calc factorial 25 --json
  calc subtract -- 3 -5
  calc eval "7 / 2"
  calc repl`,
	Args:              usageArgs(cobra.NoArgs),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return usageErrorf("a command is required")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/calc/config.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", config.DefaultPrecision, "digits after the decimal point (-1 = shortest)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
}

// setup resolves configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	configPath = path

	resolved, err := config.Resolve(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if cmd.Flags().Changed("precision") {
		if precision < -1 || precision > 17 {
			return usageErrorf("--precision must be between -1 and 17, got %d", precision)
		}
		resolved.Precision = &precision
	}
	cfg = resolved

	l, err := buildLogger(logging.FromConfig(cfg.Log))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l.Named(cmd.Name())
	logger.Debug("config resolved", zap.String("path", path), zap.Int("precision", cfg.GetPrecision()))
	return nil
}

// usageArgs marks positional argument failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}

// Execute runs the root command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "calc: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, calculator.ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, calculator.ErrSyntax), errors.Is(err, errUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
