// SPDX-License-Identifier: MIT
// Package graph implements a general directed neural graph with tapped
// delay lines: neurons connected by weighted DelayLines, evaluated in
// topological order over instantaneous edges while delayed edges may form
// feedback loops.
//
// Construction and mutation:
//
//	New(n, opts...) (*Graph, error)       - allocate n neurons, biases = 1
//	DeclareInput(i), DeclareOutput(i)      - idempotent I/O tagging
//	Connect(src, dst, *DelayLine)          - O(1), grows src's memory as needed
//	SetConnectionWeight / GetConnectionWeight
//	SetBias / GetBias
//	InitRandomUniform / InitBiasesRandom   - draws from an *rng.Source
//
// GraphOption configures construction:
//
//	WithRNG(src)     - default random source for the Init* methods
//	WithLogger(l)    - stores a logger on the graph (not written to by Graph)
//
// Query and evaluation:
//
//	ParameterCount() int                   - O(1)
//	GetParameters() / SetParameters(p)      - O(ParameterCount())
//	Evaluate(u *mat.Dense) (*mat.Dense, error) - O(samples * V^2) (full adjacency-matrix scan per tick)
//	EvaluateOne(u []float64) ([]float64, error)
//	ClearInternalMemory()                   - O(V)
//	IsValid() bool                          - O(V^2), non-mutating
//	InstantaneousSubgraph() (graph.Directed, error) - gonum cross-validation view
//
// Errors:
//
//	ErrOutOfRange         - bad index into neurons, taps, or memory
//	ErrDimensionMismatch  - input/output matrix shape mismatch
//	ErrNoInputs/ErrNoOutputs - no neuron tagged input/output
//	ErrUnusedNeuron (via *UnusedNeuronError)   - orphan non-I/O neuron
//	ErrAlgebraicLoop (via *AlgebraicLoopError) - instantaneous-edge cycle
//
// *Graph satisfies dynsys.System and can be driven directly by package lm
// and package train.
package graph
