// SPDX-License-Identifier: MIT
package graph

// GetParameters returns the flattened parameter vector: for each
// destination column i = 0..n-1, for each source row j = 0..n-1, if (j,i) is
// connected, its tap weights in tap-index order; then the n bias weights in
// neuron-index order.
func (g *Graph) GetParameters() []float64 {
	p := make([]float64, 0, g.paramCount)
	n := len(g.neurons)

	for dst := 0; dst < n; dst++ {
		for src := 0; src < n; src++ {
			dl := g.adjacency[dst][src]
			if !dl.Connected() {
				continue
			}
			for _, tap := range dl.Taps() {
				p = append(p, tap.Weight)
			}
		}
	}
	for _, nr := range g.neurons {
		p = append(p, nr.bias)
	}

	return p
}

// SetParameters overwrites every tap weight and bias from p, using the same
// canonical layout as GetParameters. len(p) must equal ParameterCount().
func (g *Graph) SetParameters(p []float64) error {
	if len(p) != g.paramCount {
		return ErrDimensionMismatch
	}
	n := len(g.neurons)
	idx := 0

	for dst := 0; dst < n; dst++ {
		for src := 0; src < n; src++ {
			dl := g.adjacency[dst][src]
			if !dl.Connected() {
				continue
			}
			for t := 0; t < dl.TapCount(); t++ {
				_ = dl.SetWeight(t, p[idx])
				idx++
			}
		}
	}
	for _, nr := range g.neurons {
		nr.bias = p[idx]
		idx++
	}

	return nil
}
