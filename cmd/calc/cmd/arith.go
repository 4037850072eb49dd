package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MrLobotomist/test-pipeline/internal/calculator"
)

var addCmd = &cobra.Command{
	Use:     "add A B",
	Aliases: []string{"sum"},
	Short:   "Print A + B",
	Args:    usageArgs(cobra.ExactArgs(2)),
	RunE:    runOp(calculator.OpAdd),
}

var subtractCmd = &cobra.Command{
	Use:     "subtract A B",
	Aliases: []string{"sub"},
	Short:   "Print A - B",
	Long: `Print A - B.

Negative operands must follow --, otherwise they are read as flags:
  calc subtract -- 3 -5`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runOp(calculator.OpSubtract),
}

var multiplyCmd = &cobra.Command{
	Use:     "multiply A B",
	Aliases: []string{"mul"},
	Short:   "Print A * B",
	Args:    usageArgs(cobra.ExactArgs(2)),
	RunE:    runOp(calculator.OpMultiply),
}

var divideCmd = &cobra.Command{
	Use:     "divide A B",
	Aliases: []string{"div"},
	Short:   "Print A / B",
	Long: `Print A / B as a floating-point value.

Dividing by zero is rejected with exit code 3.`,
	Args: usageArgs(cobra.ExactArgs(2)),
	RunE: runOp(calculator.OpDivide),
}

var factorialCmd = &cobra.Command{
	Use:     "factorial N",
	Aliases: []string{"fact"},
	Short:   "Print N!",
	Long: `Print N! for a non-negative integer N.

Results are exact for any N. Negative N is rejected with exit code 3.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runOp(calculator.OpFactorial),
}

func init() {
	rootCmd.AddCommand(addCmd, subtractCmd, multiplyCmd, divideCmd, factorialCmd)
}

func runOp(op calculator.Op) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		expr, err := calculator.NewExpression(op, args)
		if err != nil {
			return err
		}
		return evaluate(cmd, expr)
	}
}
