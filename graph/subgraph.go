// SPDX-License-Identifier: MIT
package graph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// InstantaneousSubgraph builds a gonum directed graph mirroring the
// instantaneous-edge adjacency: one node per neuron index, one edge src->dst
// for every connected pair with an instantaneous tap. It exists so the
// hand-rolled topological sort can be cross-validated against
// gonum.org/v1/gonum/graph/topo in tests; it plays no role in Evaluate.
func (g *Graph) InstantaneousSubgraph() (graph.Directed, error) {
	dg := simple.NewDirectedGraph()
	n := len(g.neurons)
	for i := 0; i < n; i++ {
		dg.AddNode(simple.Node(i))
	}
	for dst := 0; dst < n; dst++ {
		for src := 0; src < n; src++ {
			if g.adjacency[dst][src].Instantaneous() {
				dg.SetEdge(dg.NewEdge(simple.Node(src), simple.Node(dst)))
			}
		}
	}

	return dg, nil
}
