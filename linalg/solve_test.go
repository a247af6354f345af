// SPDX-License-Identifier: MIT
package linalg_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/dynnet/linalg"
	"github.com/stretchr/testify/require"
)

// TestSolveWorkedExample reproduces the canonical 2x2 worked example:
// A=[[2,1],[1,3]], b=[3,4] => x=[1,1].
func TestSolveWorkedExample(t *testing.T) {
	a, err := linalg.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 2))
	require.NoError(t, a.Set(0, 1, 1))
	require.NoError(t, a.Set(1, 0, 1))
	require.NoError(t, a.Set(1, 1, 3))

	x, err := linalg.Solve(a, []float64{3, 4})
	require.NoError(t, err)
	require.InDelta(t, 1.0, x[0], 1e-9)
	require.InDelta(t, 1.0, x[1], 1e-9)
}

// TestSolveRequiresPivoting exercises a system where the first diagonal
// entry is smaller than an entry below it, forcing a row swap.
func TestSolveRequiresPivoting(t *testing.T) {
	a, err := linalg.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 0.0001))
	require.NoError(t, a.Set(0, 1, 1))
	require.NoError(t, a.Set(1, 0, 1))
	require.NoError(t, a.Set(1, 1, 1))

	x, err := linalg.Solve(a, []float64{1, 2})
	require.NoError(t, err)

	// Verify A*x == b within tolerance.
	require.InDelta(t, 1.0, 0.0001*x[0]+x[1], 1e-6)
	require.InDelta(t, 2.0, x[0]+x[1], 1e-6)
}

// TestSolveSingularSystem ensures a degenerate system is rejected.
func TestSolveSingularSystem(t *testing.T) {
	a, err := linalg.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 1))
	require.NoError(t, a.Set(0, 1, 2))
	require.NoError(t, a.Set(1, 0, 2))
	require.NoError(t, a.Set(1, 1, 4))

	_, err = linalg.Solve(a, []float64{1, 2})
	require.ErrorIs(t, err, linalg.ErrSingularSystem)
}

// TestSolveDimensionMismatch ensures b length is validated against A.
func TestSolveDimensionMismatch(t *testing.T) {
	a, err := linalg.NewDense(2, 2)
	require.NoError(t, err)

	_, err = linalg.Solve(a, []float64{1, 2, 3})
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

// TestSolveDoesNotMutateInputs verifies A and b are left observably
// unchanged after Solve returns.
func TestSolveDoesNotMutateInputs(t *testing.T) {
	a, err := linalg.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 2))
	require.NoError(t, a.Set(0, 1, 1))
	require.NoError(t, a.Set(1, 0, 1))
	require.NoError(t, a.Set(1, 1, 3))
	b := []float64{3, 4}

	_, err = linalg.Solve(a, b)
	require.NoError(t, err)

	v, _ := a.At(0, 0)
	require.Equal(t, 2.0, v)
	require.Equal(t, []float64{3, 4}, b)
}

// TestSolveRandomSPD verifies recovery of x from A*x for random symmetric
// positive-definite systems, within 1e-8 relative error.
func TestSolveRandomSPD(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const n = 5

	for trial := 0; trial < 20; trial++ {
		// Build SPD: A = M^T M + n*I (guarantees strict diagonal dominance).
		raw := make([][]float64, n)
		for i := range raw {
			raw[i] = make([]float64, n)
			for j := range raw[i] {
				raw[i][j] = r.NormFloat64()
			}
		}
		a, err := linalg.NewDense(n, n)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					sum += raw[k][i] * raw[k][j]
				}
				if i == j {
					sum += float64(n)
				}
				require.NoError(t, a.Set(i, j, sum))
			}
		}

		xExpected := make([]float64, n)
		for i := range xExpected {
			xExpected[i] = r.NormFloat64()
		}

		b := make([]float64, n)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				v, _ := a.At(i, j)
				sum += v * xExpected[j]
			}
			b[i] = sum
		}

		x, err := linalg.Solve(a, b)
		require.NoError(t, err)

		for i := range x {
			denom := math.Max(1, math.Abs(xExpected[i]))
			require.LessOrEqual(t, math.Abs(x[i]-xExpected[i])/denom, 1e-8)
		}
	}
}
