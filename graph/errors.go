// SPDX-License-Identifier: MIT
package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for package graph.
//
// Error priority: the topological sort checks structural invariant
// violations (missing I/O, then orphans) before the algebraic-loop cycle
// check, which is the most expensive to detect and therefore runs last.
// Evaluate and EvaluateOne run that structural check before they check the
// width of the input against InputCount.
var (
	// ErrOutOfRange indicates a bad index into neurons, taps, or memory.
	ErrOutOfRange = errors.New("graph: index out of range")

	// ErrDimensionMismatch indicates an input/output matrix shape mismatch.
	ErrDimensionMismatch = errors.New("graph: dimension mismatch")

	// ErrNoInputs indicates no neuron is tagged as an input.
	ErrNoInputs = errors.New("graph: no input neurons declared")

	// ErrNoOutputs indicates no neuron is tagged as an output.
	ErrNoOutputs = errors.New("graph: no output neurons declared")

	// ErrUnusedNeuron indicates an orphan non-I/O neuron; see UnusedNeuronError.
	ErrUnusedNeuron = errors.New("graph: unused neuron")

	// ErrAlgebraicLoop indicates an instantaneous-edge cycle; see AlgebraicLoopError.
	ErrAlgebraicLoop = errors.New("graph: algebraic loop")
)

// AlgebraicLoopError carries the cycle path discovered during topological
// sort, in traversal order, with the repeated node appended at the end.
type AlgebraicLoopError struct {
	Path []int
}

func (e *AlgebraicLoopError) Error() string {
	parts := make([]string, len(e.Path))
	for i, v := range e.Path {
		parts[i] = strconv.Itoa(v)
	}

	return fmt.Sprintf("%v: %s", ErrAlgebraicLoop, strings.Join(parts, " -> "))
}

func (e *AlgebraicLoopError) Unwrap() error { return ErrAlgebraicLoop }

// UnusedNeuronError names an orphan neuron: one that is not tagged
// input/output and lacks an incoming edge, an outgoing edge, or both.
type UnusedNeuronError struct {
	Index int
}

func (e *UnusedNeuronError) Error() string {
	return fmt.Sprintf("%v: neuron %d", ErrUnusedNeuron, e.Index)
}

func (e *UnusedNeuronError) Unwrap() error { return ErrUnusedNeuron }
