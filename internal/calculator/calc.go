// Package calculator provides basic arithmetic operations and factorial.
//
// All functions are pure and safe for concurrent use. Precondition failures
// are reported as errors matching ErrInvalidArgument.
package calculator

import "math/big"

// Add returns the sum of a and b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a minus b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns a times b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns a divided by b. A zero divisor is an invalid argument.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &ArgumentError{Op: OpDivide, Value: b, Msg: "division by zero is not permitted"}
	}
	return a / b, nil
}

// Factorial returns n! as the product of 2..n. Factorial(0) and
// Factorial(1) are 1. Negative n is an invalid argument.
func Factorial(n int) (*big.Int, error) {
	if n < 0 {
		return nil, &ArgumentError{Op: OpFactorial, Value: n, Msg: "factorial is defined only for non-negative integers"}
	}
	result := big.NewInt(1)
	for i := 2; i <= n; i++ {
		result.Mul(result, big.NewInt(int64(i)))
	}
	return result, nil
}
