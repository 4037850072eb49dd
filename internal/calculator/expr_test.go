package calculator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOp(t *testing.T) {
	cases := map[string]Op{
		"add":       OpAdd,
		"SUM":       OpAdd,
		"+":         OpAdd,
		"sub":       OpSubtract,
		"-":         OpSubtract,
		"Multiply":  OpMultiply,
		"x":         OpMultiply,
		"div":       OpDivide,
		"/":         OpDivide,
		"fact":      OpFactorial,
		"FACTORIAL": OpFactorial,
	}
	for in, want := range cases {
		got, err := ParseOp(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOp("pow")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseExpression(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Expression
	}{
		{"prefix", "add 2 3", Expression{Op: OpAdd, A: 2, B: 3}},
		{"prefix symbol", "- 3 5", Expression{Op: OpSubtract, A: 3, B: 5}},
		{"infix", "7 / 2", Expression{Op: OpDivide, A: 7, B: 2}},
		{"infix negative operand", "-4 * 2.5", Expression{Op: OpMultiply, A: -4, B: 2.5}},
		{"infix minus", "3 - -5", Expression{Op: OpSubtract, A: 3, B: -5}},
		{"postfix factorial", "5!", Expression{Op: OpFactorial, N: 5}},
		{"spaced factorial", "6 !", Expression{Op: OpFactorial, N: 6}},
		{"named factorial", "fact 4", Expression{Op: OpFactorial, N: 4}},
		{"extra whitespace", "  mul   3\t4 ", Expression{Op: OpMultiply, A: 3, B: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseExpression(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseExpressionErrors(t *testing.T) {
	for _, line := range []string{"", "   ", "pow 2 3", "add 2", "add 2 3 4", "add two 3", "fact 2.5", "!", "1 2 3"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseExpression(line)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestExpressionEval(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"add 2 3", "5"},
		{"subtract 3 5", "-2"},
		{"multiply 5 0", "0"},
		{"divide 7 2", "3.5"},
		{"0!", "1"},
		{"5!", "120"},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			expr, err := ParseExpression(tc.line)
			require.NoError(t, err)
			result, err := expr.Eval()
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Format(-1))
		})
	}
}

func TestExpressionEvalInvalidArgument(t *testing.T) {
	for _, line := range []string{"1 / 0", "-1!", "fact -3"} {
		expr, err := ParseExpression(line)
		require.NoError(t, err, line)
		_, err = expr.Eval()
		assert.ErrorIs(t, err, ErrInvalidArgument, line)
	}
}

func TestResultFormat(t *testing.T) {
	r := Result{Op: OpDivide, Float: 2.0 / 3.0}
	assert.Equal(t, "0.67", r.Format(2))
	assert.Equal(t, "1", Result{Op: OpAdd, Float: 1}.Format(-1))
	assert.Equal(t, "1.000", Result{Op: OpAdd, Float: 1}.Format(3))
}

func TestResultValueJSON(t *testing.T) {
	expr, err := NewExpression(OpFactorial, []string{"22"})
	require.NoError(t, err)
	result, err := expr.Eval()
	require.NoError(t, err)

	data, err := json.Marshal(map[string]any{"result": result.Value()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": 1124000727777607680000}`, string(data))
}

func TestExpressionString(t *testing.T) {
	assert.Equal(t, "2 + 3.5", Expression{Op: OpAdd, A: 2, B: 3.5}.String())
	assert.Equal(t, "7!", Expression{Op: OpFactorial, N: 7}.String())
}
