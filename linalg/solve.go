// SPDX-License-Identifier: MIT
package linalg

import "math"

// Solve solves A x = b for a dense square A via Gaussian elimination with
// partial pivoting, followed by back-substitution.
//
// A and b are copied internally and never mutated observably; the caller's
// slices and matrix are left untouched. Pivot selection starts from the
// diagonal row and scans the rows below it for the largest-magnitude entry in
// the current column; rows are swapped only when a lower row's entry is
// strictly larger than the diagonal entry.
//
// Stage 1 (Validate): square, non-empty, b length matches A's dimension.
// Stage 2 (Execute): forward elimination with row swaps.
// Stage 3 (Finalize): back-substitution.
func Solve(a *Dense, b []float64) ([]float64, error) {
	if a == nil {
		return nil, ErrInvalidDimensions
	}
	if a.Rows() != a.Cols() {
		return nil, ErrNonSquare
	}
	n := a.Rows()
	if len(b) != n {
		return nil, ErrDimensionMismatch
	}

	system := a.Clone()
	solution := make([]float64, n)
	copy(solution, b)

	for i := 0; i < n; i++ {
		// Find the largest-magnitude candidate in column i, from the diagonal row down.
		pivotRow := i
		pivotVal, _ := system.At(i, i)
		best := math.Abs(pivotVal)
		for j := i + 1; j < n; j++ {
			v, _ := system.At(j, i)
			if math.Abs(v) > best {
				best = math.Abs(v)
				pivotRow = j
			}
		}
		if pivotRow != i {
			swapRows(system, i, pivotRow)
			solution[i], solution[pivotRow] = solution[pivotRow], solution[i]
		}

		diag, _ := system.At(i, i)
		if math.Abs(diag) < Epsilon {
			return nil, ErrSingularSystem
		}

		for j := i + 1; j < n; j++ {
			below, _ := system.At(j, i)
			factor := below / diag
			if factor == 0 {
				continue
			}
			for k := i; k < n; k++ {
				sik, _ := system.At(i, k)
				sjk, _ := system.At(j, k)
				_ = system.Set(j, k, sjk-factor*sik)
			}
			solution[j] -= factor * solution[i]
		}
	}

	// Back-substitution from the last row upward.
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := solution[i]
		for k := i + 1; k < n; k++ {
			sik, _ := system.At(i, k)
			sum -= sik * x[k]
		}
		diag, _ := system.At(i, i)
		x[i] = sum / diag
	}

	return x, nil
}

func swapRows(m *Dense, r1, r2 int) {
	for k := 0; k < m.Cols(); k++ {
		v1, _ := m.At(r1, k)
		v2, _ := m.At(r2, k)
		_ = m.Set(r1, k, v2)
		_ = m.Set(r2, k, v1)
	}
}
