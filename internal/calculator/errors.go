package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a caller-supplied value that violates a
	// function's preconditions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSyntax marks operand or expression text that cannot be parsed.
	ErrSyntax = errors.New("syntax error")
)

// ArgumentError describes a rejected input to one of the operations.
type ArgumentError struct {
	Op    Op
	Value any
	Msg   string
}

func (e *ArgumentError) Error() string {
	if e.Op == OpFactorial {
		return fmt.Sprintf("%s: %s (got %v)", e.Op, e.Msg, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func syntaxErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}
