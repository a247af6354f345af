// SPDX-License-Identifier: MIT
// Package linalg provides a row-major dense matrix and a partial-pivoted
// Gaussian elimination solver used by the Levenberg-Marquardt inner loop to
// solve the damped normal equations.
package linalg
