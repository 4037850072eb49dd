package calculator

import (
	"math/big"
	"strconv"
	"strings"
)

// Op names one of the supported operations.
type Op string

const (
	OpAdd       Op = "add"
	OpSubtract  Op = "subtract"
	OpMultiply  Op = "multiply"
	OpDivide    Op = "divide"
	OpFactorial Op = "factorial"
)

var opAliases = map[string]Op{
	"add":       OpAdd,
	"sum":       OpAdd,
	"+":         OpAdd,
	"subtract":  OpSubtract,
	"sub":       OpSubtract,
	"-":         OpSubtract,
	"multiply":  OpMultiply,
	"mul":       OpMultiply,
	"*":         OpMultiply,
	"x":         OpMultiply,
	"divide":    OpDivide,
	"div":       OpDivide,
	"/":         OpDivide,
	"factorial": OpFactorial,
	"fact":      OpFactorial,
	"!":         OpFactorial,
}

// ParseOp resolves an operation name, alias, or symbol.
func ParseOp(s string) (Op, error) {
	op, ok := opAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", syntaxErrorf("unknown operation %q", s)
	}
	return op, nil
}

// Arity returns the number of operands op takes.
func (o Op) Arity() int {
	if o == OpFactorial {
		return 1
	}
	return 2
}

// Symbol returns the conventional symbol for op.
func (o Op) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpFactorial:
		return "!"
	default:
		return "?"
	}
}

// Expression is an operation applied to parsed operands.
type Expression struct {
	Op Op
	A  float64
	B  float64
	N  int
}

// NewExpression parses operands for op. Binary operations take two decimal
// numbers; factorial takes one integer.
func NewExpression(op Op, operands []string) (Expression, error) {
	if len(operands) != op.Arity() {
		return Expression{}, syntaxErrorf("%s takes %d operand(s), got %d", op, op.Arity(), len(operands))
	}

	if op == OpFactorial {
		n, err := strconv.Atoi(strings.TrimSpace(operands[0]))
		if err != nil {
			return Expression{}, syntaxErrorf("factorial operand %q is not an integer", operands[0])
		}
		return Expression{Op: op, N: n}, nil
	}

	a, err := parseNumber(operands[0])
	if err != nil {
		return Expression{}, err
	}
	b, err := parseNumber(operands[1])
	if err != nil {
		return Expression{}, err
	}
	return Expression{Op: op, A: a, B: b}, nil
}

// ParseExpression parses a single line in prefix ("add 2 3"), infix
// ("2 + 3") or postfix factorial ("5!", "5 !") form.
func ParseExpression(line string) (Expression, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return Expression{}, syntaxErrorf("empty expression")

	case len(fields) == 1 && strings.HasSuffix(fields[0], "!") && len(fields[0]) > 1:
		return NewExpression(OpFactorial, []string{strings.TrimSuffix(fields[0], "!")})

	case len(fields) == 2 && fields[1] == "!":
		return NewExpression(OpFactorial, fields[:1])

	case len(fields) == 3 && isInfix(fields[1]):
		op, _ := ParseOp(fields[1])
		return NewExpression(op, []string{fields[0], fields[2]})
	}

	op, err := ParseOp(fields[0])
	if err != nil {
		return Expression{}, err
	}
	return NewExpression(op, fields[1:])
}

func isInfix(s string) bool {
	op, err := ParseOp(s)
	return err == nil && op.Arity() == 2 && len(s) == 1
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, syntaxErrorf("operand %q is not a number", s)
	}
	return v, nil
}

// Operands returns the operands as they would be written back.
func (e Expression) Operands() []string {
	if e.Op == OpFactorial {
		return []string{strconv.Itoa(e.N)}
	}
	return []string{formatFloat(e.A, -1), formatFloat(e.B, -1)}
}

// String renders the expression in infix form.
func (e Expression) String() string {
	if e.Op == OpFactorial {
		return strconv.Itoa(e.N) + "!"
	}
	ops := e.Operands()
	return ops[0] + " " + e.Op.Symbol() + " " + ops[1]
}

// Eval applies the expression's operation.
func (e Expression) Eval() (Result, error) {
	switch e.Op {
	case OpAdd:
		return Result{Op: e.Op, Float: Add(e.A, e.B)}, nil
	case OpSubtract:
		return Result{Op: e.Op, Float: Subtract(e.A, e.B)}, nil
	case OpMultiply:
		return Result{Op: e.Op, Float: Multiply(e.A, e.B)}, nil
	case OpDivide:
		v, err := Divide(e.A, e.B)
		if err != nil {
			return Result{}, err
		}
		return Result{Op: e.Op, Float: v}, nil
	case OpFactorial:
		v, err := Factorial(e.N)
		if err != nil {
			return Result{}, err
		}
		return Result{Op: e.Op, Int: v}, nil
	default:
		return Result{}, syntaxErrorf("unknown operation %q", e.Op)
	}
}

// Result holds the outcome of an evaluation. Int is set for factorial,
// Float for everything else.
type Result struct {
	Op    Op
	Float float64
	Int   *big.Int
}

// Format renders the result. For floats precision is the number of digits
// after the decimal point; -1 picks the shortest exact representation.
func (r Result) Format(precision int) string {
	if r.Int != nil {
		return r.Int.String()
	}
	return formatFloat(r.Float, precision)
}

// Value returns the result as a JSON-encodable value.
func (r Result) Value() any {
	if r.Int != nil {
		return r.Int
	}
	return r.Float
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}
