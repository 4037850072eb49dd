package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrLobotomist/test-pipeline/internal/calculator"
)

var evalCmd = &cobra.Command{
	Use:   "eval EXPR...",
	Short: "Evaluate a single expression",
	Long: `Evaluate a single expression.

The arguments are joined with spaces, so quoting is optional.

Examples:
  calc eval 2 + 3
  calc eval "add 2 3"
  calc eval 5!
  calc eval -- -4 x 2`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	expr, err := calculator.ParseExpression(strings.Join(args, " "))
	if err != nil {
		return err
	}
	return evaluate(cmd, expr)
}

// evaluate runs expr and prints the result in the selected output format.
func evaluate(cmd *cobra.Command, expr calculator.Expression) error {
	result, err := expr.Eval()
	if err != nil {
		logger.Warn("rejected", zap.String("op", string(expr.Op)), zap.Strings("args", expr.Operands()), zap.Error(err))
		return err
	}
	logger.Debug("evaluated", zap.Stringer("expr", expr), zap.Any("result", result.Value()))

	out := cmd.OutOrStdout()
	if jsonOutput {
		payload := map[string]any{
			"op":     expr.Op,
			"args":   expr.Operands(),
			"result": result.Value(),
		}
		if err := json.NewEncoder(out).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, result.Format(cfg.GetPrecision()))
	return nil
}
