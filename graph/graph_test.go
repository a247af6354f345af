// SPDX-License-Identifier: MIT
package graph_test

import (
	"testing"

	"github.com/katalvlaran/dynnet/graph"
	"github.com/katalvlaran/dynnet/rng"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"
)

func mustDelayLine(t *testing.T, delay int, w float64) *graph.DelayLine {
	t.Helper()
	dl, err := graph.NewDelayLine(delay, w)
	require.NoError(t, err)

	return dl
}

// buildXOR constructs the canonical 5-neuron XOR topology from the end-to-end
// scenario: 0,1 inputs; 2,3 hidden; 4 output; instantaneous edges
// 0->2, 0->3, 1->2, 1->3, 2->4, 3->4.
func buildXOR(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(5)
	require.NoError(t, err)
	require.NoError(t, g.DeclareInput(0))
	require.NoError(t, g.DeclareInput(1))
	require.NoError(t, g.DeclareOutput(4))

	edges := [][2]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 4}, {3, 4}}
	for _, e := range edges {
		require.NoError(t, g.Connect(e[0], e[1], mustDelayLine(t, 0, 1)))
	}

	return g
}

func TestParameterRoundTrip(t *testing.T) {
	g := buildXOR(t)
	p := g.GetParameters()
	require.Len(t, p, g.ParameterCount())

	modified := make([]float64, len(p))
	for i := range modified {
		modified[i] = float64(i) * 0.1
	}
	require.NoError(t, g.SetParameters(modified))
	require.Equal(t, modified, g.GetParameters())
}

func TestParameterCountFormula(t *testing.T) {
	g := buildXOR(t)
	// 6 instantaneous single-tap edges + 5 biases.
	require.Equal(t, 6+5, g.ParameterCount())
}

func TestSetParametersWrongLength(t *testing.T) {
	g := buildXOR(t)
	err := g.SetParameters([]float64{1, 2, 3})
	require.ErrorIs(t, err, graph.ErrDimensionMismatch)
}

func TestTopologicalSortValidAcyclic(t *testing.T) {
	g := buildXOR(t)
	require.True(t, g.IsValid())
}

func TestTopologicalSortDetectsAlgebraicLoop(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.NoError(t, g.DeclareInput(0))
	require.NoError(t, g.DeclareOutput(1))
	require.NoError(t, g.Connect(0, 1, mustDelayLine(t, 0, 1)))
	require.NoError(t, g.Connect(1, 0, mustDelayLine(t, 0, 1)))

	require.False(t, g.IsValid())

	u := mat.NewDense(1, 1, []float64{1})
	_, err = g.Evaluate(u)
	require.Error(t, err)
	var loopErr *graph.AlgebraicLoopError
	require.ErrorAs(t, err, &loopErr)
	require.ErrorIs(t, err, graph.ErrAlgebraicLoop)
}

func TestOrphanDetection(t *testing.T) {
	g, err := graph.New(3)
	require.NoError(t, err)
	require.NoError(t, g.DeclareInput(0))
	require.NoError(t, g.DeclareOutput(1))
	require.NoError(t, g.Connect(0, 1, mustDelayLine(t, 0, 1)))
	// neuron 2 has no connections and is neither input nor output.

	require.False(t, g.IsValid())
}

func TestNoInputsNoOutputs(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.False(t, g.IsValid())
}

func TestEvaluateDeterministic(t *testing.T) {
	g := buildXOR(t)
	u := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})

	y1, err := g.Evaluate(u)
	require.NoError(t, err)
	g.ClearInternalMemory()
	y2, err := g.Evaluate(u)
	require.NoError(t, err)

	require.True(t, mat.Equal(y1, y2))
}

func TestClearInternalMemoryIdempotence(t *testing.T) {
	g, err := graph.New(4)
	require.NoError(t, err)
	require.NoError(t, g.DeclareInput(0))
	require.NoError(t, g.DeclareOutput(3))
	require.NoError(t, g.Connect(0, 1, mustDelayLine(t, 0, 1)))
	require.NoError(t, g.Connect(0, 2, mustDelayLine(t, 0, 1)))
	require.NoError(t, g.Connect(1, 3, mustDelayLine(t, 1, 0.5)))
	require.NoError(t, g.Connect(2, 3, mustDelayLine(t, 1, 0.5)))

	u := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y1, err := g.Evaluate(u)
	require.NoError(t, err)

	g.ClearInternalMemory()
	y2, err := g.Evaluate(u)
	require.NoError(t, err)

	require.True(t, mat.EqualApprox(y1, y2, 0))
}

func TestXOREndToEndUntrained(t *testing.T) {
	g := buildXOR(t)
	u := mat.NewDense(1, 2, []float64{0, 1})
	y, err := g.Evaluate(u)
	require.NoError(t, err)
	require.Equal(t, 1, y.RawMatrix().Rows)
}

func TestInstantaneousSubgraphCrossValidatesAcyclic(t *testing.T) {
	g := buildXOR(t)
	sg, err := g.InstantaneousSubgraph()
	require.NoError(t, err)

	_, err = topo.Sort(sg)
	require.NoError(t, err)
}

func TestInstantaneousSubgraphCrossValidatesCycle(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.NoError(t, g.Connect(0, 1, mustDelayLine(t, 0, 1)))
	require.NoError(t, g.Connect(1, 0, mustDelayLine(t, 0, 1)))

	sg, err := g.InstantaneousSubgraph()
	require.NoError(t, err)

	_, err = topo.Sort(sg)
	require.Error(t, err)
}

func TestInitRandomUniformBounds(t *testing.T) {
	g := buildXOR(t)
	src := rng.New(5)
	require.NoError(t, g.InitRandomUniform(-0.5, 0.5, src))

	for _, w := range g.GetParameters()[:6] {
		require.GreaterOrEqual(t, w, -0.5)
		require.LessOrEqual(t, w, 0.5)
	}
}

func TestDelayedEdgeAllowsFeedback(t *testing.T) {
	g, err := graph.New(2)
	require.NoError(t, err)
	require.NoError(t, g.DeclareInput(0))
	require.NoError(t, g.DeclareOutput(1))
	require.NoError(t, g.Connect(0, 1, mustDelayLine(t, 0, 1)))
	require.NoError(t, g.Connect(1, 0, mustDelayLine(t, 1, 0.5)))

	require.True(t, g.IsValid())
}
