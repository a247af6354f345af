// SPDX-License-Identifier: MIT
package train

import (
	"sort"

	"github.com/katalvlaran/dynnet/dynsys"
	"github.com/katalvlaran/dynnet/graph"
	"github.com/katalvlaran/dynnet/rng"
	"gonum.org/v1/gonum/mat"
)

// OutputInitializer applies a heuristic weight assignment to an output
// neuron's incoming connections before LM training begins.
type OutputInitializer interface {
	PerformInitOn(sys dynsys.System) error
}

// NewOutputInitializer picks the initializer implementation for sys by type
// switch: graphOutputInitializer for *graph.Graph, noopInitializer for
// anything else. This is the Go analogue of the original's
// std::conditional-based dispatch on the concrete system type.
func NewOutputInitializer(sys dynsys.System, yDesired *mat.Dense, src *rng.Source) OutputInitializer {
	if g, ok := sys.(*graph.Graph); ok {
		return newGraphOutputInitializer(g, yDesired, src)
	}

	return noopInitializer{}
}

type noopInitializer struct{}

func (noopInitializer) PerformInitOn(dynsys.System) error { return nil }

type connectionSource struct {
	source int
	tap    int
}

type outputNeuronInfo struct {
	index  int
	srcs   []connectionSource
	target float64 // target range for this output column
}

// graphOutputInitializer precomputes, per output neuron, the range of its
// training target column and the ordered list of incoming connection taps,
// so PerformInitOn can run in a single pass over a *graph.Graph.
type graphOutputInitializer struct {
	rngSrc *rng.Source
	infos  []outputNeuronInfo
}

func newGraphOutputInitializer(g *graph.Graph, yDesired *mat.Dense, src *rng.Source) *graphOutputInitializer {
	outputs := g.Outputs()
	infos := make([]outputNeuronInfo, len(outputs))

	for col, idx := range outputs {
		infos[col] = outputNeuronInfo{
			index:  idx,
			target: columnRange(yDesired, col),
			srcs:   incomingTaps(g, idx),
		}
	}

	return &graphOutputInitializer{rngSrc: src, infos: infos}
}

func columnRange(m *mat.Dense, col int) float64 {
	rows, _ := m.Dims()
	if rows == 0 {
		return 0
	}
	maxV, minV := m.At(0, col), m.At(0, col)
	for i := 1; i < rows; i++ {
		v := m.At(i, col)
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}

	return maxV - minV
}

// incomingTaps lists every connected tap feeding neuron dst, ordered by
// ascending source neuron index and then ascending tap index.
func incomingTaps(g *graph.Graph, dst int) []connectionSource {
	n := g.NeuronCount()
	sources := make([]int, 0, n)
	for src := 0; src < n; src++ {
		dl, err := g.DelayLineAt(src, dst)
		if err != nil || !dl.Connected() {
			continue
		}
		sources = append(sources, src)
	}
	sort.Ints(sources)

	var out []connectionSource
	for _, src := range sources {
		dl, _ := g.DelayLineAt(src, dst)
		for tap := 0; tap < dl.TapCount(); tap++ {
			out = append(out, connectionSource{source: src, tap: tap})
		}
	}

	return out
}

// PerformInitOn assigns, for each output neuron, a random count r in
// [1, len(srcs)+1] of its incoming taps (ascending order) the weight
// target/r; any leftover share (when r exceeds the tap count) is assigned
// to the neuron's bias instead.
func (init *graphOutputInitializer) PerformInitOn(sys dynsys.System) error {
	g, ok := sys.(*graph.Graph)
	if !ok {
		return nil
	}

	for _, info := range init.infos {
		r := init.rngSrc.UniformInt(1, len(info.srcs)+1)
		initWeight := info.target / float64(r)

		cnt := r
		for _, conn := range info.srcs {
			if cnt == 0 {
				break
			}
			if err := g.SetConnectionWeight(conn.source, info.index, conn.tap, initWeight); err != nil {
				return err
			}
			cnt--
		}
		if cnt > 0 {
			if err := g.SetBias(info.index, initWeight); err != nil {
				return err
			}
		}
	}

	return nil
}
