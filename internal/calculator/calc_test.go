package calculator

import (
	"errors"
	"math"
	"math/big"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestAdd(t *testing.T) {
	cases := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"positive numbers", 2, 3, 5},
		{"negative numbers", -1, -2, -3},
		{"zeros", 0, 0, 0},
		{"floats", 1.5, 2.5, 4},
		{"negative and positive", -1, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Add(tc.a, tc.b)
			if result != tc.expected {
				t.Errorf("Add(%g, %g) = %g, want %g", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	cases := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"positive result", 5, 3, 2},
		{"negative result", 3, 5, -2},
		{"zeros", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Subtract(tc.a, tc.b)
			if result != tc.expected {
				t.Errorf("Subtract(%g, %g) = %g, want %g", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func TestMultiply(t *testing.T) {
	cases := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"positive numbers", 3, 4, 12},
		{"multiply by zero", 5, 0, 0},
		{"negative and positive", -2, 3, -6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Multiply(tc.a, tc.b)
			if result != tc.expected {
				t.Errorf("Multiply(%g, %g) = %g, want %g", tc.a, tc.b, result, tc.expected)
			}
		})
	}
}

func TestDivide(t *testing.T) {
	cases := []struct {
		name     string
		a, b     float64
		expected float64
	}{
		{"normal division", 10, 2, 5},
		{"float result", 7, 2, 3.5},
		{"negative divisor", 9, -3, -3},
		{"zero dividend", 0, 4, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Divide(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDivideByZero(t *testing.T) {
	negZero := math.Copysign(0, -1)
	for _, x := range []float64{1, 0, -7.5, math.MaxFloat64, math.NaN(), math.Inf(1)} {
		for _, zero := range []float64{0, negZero} {
			_, err := Divide(x, zero)
			require.Error(t, err, "Divide(%g, %g)", x, zero)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), "division by zero")

			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, OpDivide, argErr.Op)
		}
	}
}

func TestFactorial(t *testing.T) {
	cases := []struct {
		n        int
		expected int64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{10, 3628800},
		{20, 2432902008176640000},
	}

	for _, tc := range cases {
		result, err := Factorial(tc.n)
		require.NoError(t, err)
		if result.Cmp(big.NewInt(tc.expected)) != 0 {
			t.Errorf("Factorial(%d) = %s, want %d", tc.n, result, tc.expected)
		}
	}
}

func TestFactorialDoesNotOverflow(t *testing.T) {
	result, err := Factorial(25)
	require.NoError(t, err)
	assert.Equal(t, "15511210043330985984000000", result.String())
}

func TestFactorialNegative(t *testing.T) {
	for _, n := range []int{-1, -2, -100} {
		result, err := Factorial(n)
		assert.Nil(t, result)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "non-negative")
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestArithmeticProperties(t *testing.T) {
	t.Run("add commutes", func(t *testing.T) {
		f := func(a, b float64) bool {
			return !finite(a, b) || Add(a, b) == Add(b, a)
		}
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("subtract antisymmetric", func(t *testing.T) {
		f := func(a, b float64) bool {
			return !finite(a, b) || Subtract(a, b) == -Subtract(b, a)
		}
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("multiply commutes", func(t *testing.T) {
		f := func(a, b float64) bool {
			return !finite(a, b) || Multiply(a, b) == Multiply(b, a)
		}
		require.NoError(t, quick.Check(f, nil))
	})

	// quick generates values across the whole float64 range, so operands
	// are scaled down to keep a*b finite and normal.
	t.Run("divide inverts multiply", func(t *testing.T) {
		f := func(a, b float64) bool {
			a = math.Mod(a, 1e6)
			b = math.Mod(b, 1e6)
			if !finite(a, b) || math.Abs(b) < 1e-6 {
				return true
			}
			got, err := Divide(Multiply(a, b), b)
			return err == nil && scalar.EqualWithinAbsOrRel(got, a, 1e-9, 1e-12)
		}
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("negative factorial always fails", func(t *testing.T) {
		f := func(n int16) bool {
			if n >= 0 {
				n = -n - 1
			}
			_, err := Factorial(int(n))
			return errors.Is(err, ErrInvalidArgument)
		}
		require.NoError(t, quick.Check(f, nil))
	})
}
