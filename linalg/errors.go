// SPDX-License-Identifier: MIT
package linalg

import "errors"

// Sentinel errors for package linalg.
//
// Error priority (checked in this order by every entry point): invalid
// dimensions first, then out-of-bounds indexing, then dimension mismatch
// between operands, then numerical failure (singular system).
var (
	// ErrInvalidDimensions indicates a non-positive row or column count.
	ErrInvalidDimensions = errors.New("linalg: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates a row or column index outside the valid range.
	ErrIndexOutOfBounds = errors.New("linalg: index out of bounds")

	// ErrDimensionMismatch indicates operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrNonSquare indicates a square matrix was required but not supplied.
	ErrNonSquare = errors.New("linalg: matrix must be square")

	// ErrSingularSystem indicates the pivot magnitude fell below Epsilon during
	// Gaussian elimination; the system has no unique solution to the precision
	// this solver can certify.
	ErrSingularSystem = errors.New("linalg: singular system")
)
