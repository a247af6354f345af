// SPDX-License-Identifier: MIT
package graph

import "gonum.org/v1/gonum/mat"

// Evaluate runs the graph over every row of u (shape [samples x InputCount])
// and returns Y (shape [samples x OutputCount]).
//
// Per sample, in topological order: input-tagged neurons are seeded from the
// matching input column, every incoming edge contributes its instantaneous
// tap (this tick's source output) and its delayed taps (past source
// outputs), the neuron's bias is added and its activation applied. After all
// neurons in a tick are updated, every neuron with memory pushes its new
// output; output-tagged neurons write to Y in declaration order.
func (g *Graph) Evaluate(u *mat.Dense) (*mat.Dense, error) {
	if err := g.ensureSorted(); err != nil {
		return nil, err
	}

	samples, inputs := u.Dims()
	if inputs != len(g.inputPorts) {
		return nil, ErrDimensionMismatch
	}

	y := mat.NewDense(samples, len(g.outputs), nil)
	for s := 0; s < samples; s++ {
		row := make([]float64, inputs)
		mat.Row(row, s, u)

		outRow, err := g.evaluateTick(row)
		if err != nil {
			return nil, err
		}
		y.SetRow(s, outRow)
	}

	return y, nil
}

// EvaluateOne evaluates a single sample and advances memory exactly as
// Evaluate would for one row.
func (g *Graph) EvaluateOne(u []float64) ([]float64, error) {
	if err := g.ensureSorted(); err != nil {
		return nil, err
	}
	if len(u) != len(g.inputPorts) {
		return nil, ErrDimensionMismatch
	}

	return g.evaluateTick(u)
}

// inputPortIndex returns the port position assigned to neuron i, or -1 if i
// is not an input.
func (g *Graph) inputPortIndex(i int) int {
	if port, ok := g.inputPorts[i]; ok {
		return port
	}

	return -1
}

func (g *Graph) evaluateTick(u []float64) ([]float64, error) {
	n := len(g.neurons)

	// Instantaneous edges only ever point from an earlier node in topoOrder
	// to a later one (that is what the sort guarantees), so accumulating and
	// activating dst in a single pass, in topological order, is sufficient:
	// every instantaneous source's output for this tick is already final by
	// the time dst reads it.
	for _, dst := range g.topoOrder {
		nr := g.neurons[dst]
		var acc float64
		if nr.isInput {
			acc = u[g.inputPortIndex(dst)]
		}

		for src := 0; src < n; src++ {
			dl := g.adjacency[dst][src]
			if !dl.Connected() {
				continue
			}
			for _, tap := range dl.Taps() {
				if tap.DelayIndex == 0 {
					acc += tap.Weight * g.neurons[src].output
				} else {
					v, err := g.neurons[src].read(tap.DelayIndex - 1)
					if err != nil {
						return nil, err
					}
					acc += tap.Weight * v
				}
			}
		}

		acc += nr.bias
		nr.output = nr.activation(acc)
	}

	for _, nr := range g.neurons {
		if nr.memoryLength() > 0 {
			nr.push(nr.output)
		}
	}

	out := make([]float64, len(g.outputs))
	for i, idx := range g.outputs {
		out[i] = g.neurons[idx].output
	}

	return out, nil
}
