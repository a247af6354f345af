// SPDX-License-Identifier: MIT
// Package dynsys declares the capability set that the training and Jacobian
// packages depend on, instead of importing the graph package directly.
//
// This is the Go replacement for template-over-system-type dispatch: any
// concrete type that can report its parameter count, get/set its parameter
// vector, evaluate a batch of samples, report its output width, clear its
// internal memory, and produce an independent clone satisfies System and can
// be trained by package lm and package train without either importing
// package graph.
package dynsys

import "gonum.org/v1/gonum/mat"

// System is the capability set a trainable dynamic model must provide.
//
// Implementations are not required to be safe for concurrent use; callers
// that fan out work across goroutines (see package jacobian) must operate on
// independent clones produced by Clone.
type System interface {
	// ParameterCount returns the length of the flattened parameter vector.
	ParameterCount() int

	// GetParameters returns a copy of the current flattened parameter vector.
	GetParameters() []float64

	// SetParameters overwrites the parameter vector. len(p) must equal
	// ParameterCount(); implementations return an error otherwise.
	SetParameters(p []float64) error

	// Evaluate runs the system over every row of u (shape [samples x inputs])
	// and returns the corresponding outputs (shape [samples x OutputCount()]).
	Evaluate(u *mat.Dense) (*mat.Dense, error)

	// OutputCount returns the number of declared outputs.
	OutputCount() int

	// ClearInternalMemory resets any delay/history state to zero without
	// touching parameters.
	ClearInternalMemory()

	// Clone returns an independent copy sharing no mutable state with the
	// receiver.
	Clone() System
}
