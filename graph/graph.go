// SPDX-License-Identifier: MIT
// Package graph implements the general directed neural graph with tapped
// delay lines: a fixed-size collection of neurons connected by weighted
// DelayLines, evaluated in topological order over instantaneous edges while
// delayed edges may feed back.
package graph

import (
	"log"

	"github.com/katalvlaran/dynnet/dynsys"
	"github.com/katalvlaran/dynnet/rng"
)

// Graph is a fixed-size neural graph with tapped delay lines.
//
// Mutation (declaring I/O, connecting neurons, setting weights) is
// monotonic: topology never shrinks. Every mutating call that can change the
// instantaneous-edge structure marks the cached topological order dirty; it
// is recomputed lazily the next time it is needed.
type Graph struct {
	neurons    []*neuron
	adjacency  [][]*DelayLine // row = destination, col = source
	inputPorts map[int]int    // neuron index -> input port position
	outputs    []int          // output-tagged neuron indices, in declaration order

	paramCount int

	topoOrder []int
	dirty     bool

	defaultRNG *rng.Source
	logger     *log.Logger
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithRNG binds a default random source used by InitRandomUniform /
// InitBiasesRandom when callers pass a nil source.
func WithRNG(src *rng.Source) GraphOption {
	return func(g *Graph) { g.defaultRNG = src }
}

// WithLogger stores a *log.Logger on the graph; Clone carries it over to the
// copy. No method of Graph writes to it, and the graph exposes no accessor
// for it.
func WithLogger(l *log.Logger) GraphOption {
	return func(g *Graph) { g.logger = l }
}

// New allocates a Graph with n neurons, identity topological order, and
// every bias initialized to 1.0.
func New(n int, opts ...GraphOption) (*Graph, error) {
	if n <= 0 {
		return nil, ErrOutOfRange
	}

	neurons := make([]*neuron, n)
	adjacency := make([][]*DelayLine, n)
	topo := make([]int, n)
	for i := 0; i < n; i++ {
		neurons[i] = newNeuron(i)
		adjacency[i] = make([]*DelayLine, n)
		topo[i] = i
	}

	g := &Graph{
		neurons:    neurons,
		adjacency:  adjacency,
		inputPorts: make(map[int]int),
		paramCount: n, // every bias counts as a parameter from the start
		topoOrder:  topo,
		dirty:      false,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// NeuronCount returns the number of neurons in the graph.
func (g *Graph) NeuronCount() int { return len(g.neurons) }

// InputCount returns the number of neurons currently tagged as input.
func (g *Graph) InputCount() int { return len(g.inputPorts) }

// OutputCount returns the number of neurons currently tagged as output, in
// declaration order.
func (g *Graph) OutputCount() int { return len(g.outputs) }

// Outputs returns a copy of the output-tagged neuron indices, in declaration
// order.
func (g *Graph) Outputs() []int {
	out := make([]int, len(g.outputs))
	copy(out, g.outputs)

	return out
}

// ParameterCount returns the number of tap weights plus the number of
// neurons (every bias counts as a parameter regardless of I/O tagging).
func (g *Graph) ParameterCount() int { return g.paramCount }

func (g *Graph) boundsCheck(i int) error {
	if i < 0 || i >= len(g.neurons) {
		return ErrOutOfRange
	}

	return nil
}

// DeclareInput tags neuron i as an input and assigns it the next free input
// port position. Idempotent.
func (g *Graph) DeclareInput(i int) error {
	if err := g.boundsCheck(i); err != nil {
		return err
	}
	if g.neurons[i].isInput {
		return nil
	}
	g.neurons[i].isInput = true
	g.inputPorts[i] = len(g.inputPorts)
	g.dirty = true

	return nil
}

// DeclareOutput tags neuron i as an output, appending it to the declaration
// order used when writing evaluation results. Idempotent.
func (g *Graph) DeclareOutput(i int) error {
	if err := g.boundsCheck(i); err != nil {
		return err
	}
	if g.neurons[i].isOutput {
		return nil
	}
	g.neurons[i].isOutput = true
	g.outputs = append(g.outputs, i)
	g.dirty = true

	return nil
}

// IsInput reports whether neuron i is tagged as an input.
func (g *Graph) IsInput(i int) (bool, error) {
	if err := g.boundsCheck(i); err != nil {
		return false, err
	}

	return g.neurons[i].isInput, nil
}

// IsOutput reports whether neuron i is tagged as an output.
func (g *Graph) IsOutput(i int) (bool, error) {
	if err := g.boundsCheck(i); err != nil {
		return false, err
	}

	return g.neurons[i].isOutput, nil
}

// Connect stores dl as the edge from src to dst (row=dst, col=src),
// replacing any existing edge between the same pair, and grows src's memory
// if dl's maximum delay exceeds its current memory length. Parameter count
// is adjusted by the difference in tap counts.
func (g *Graph) Connect(src, dst int, dl *DelayLine) error {
	if err := g.boundsCheck(src); err != nil {
		return err
	}
	if err := g.boundsCheck(dst); err != nil {
		return err
	}
	if dl == nil {
		return ErrOutOfRange
	}

	existing := g.adjacency[dst][src]
	g.paramCount -= existing.TapCount()
	g.paramCount += dl.TapCount()
	g.adjacency[dst][src] = dl

	if dl.HasDelays() && dl.MaxDelay()+1 > g.neurons[src].memoryLength() {
		g.neurons[src].setMemoryLength(dl.MaxDelay() + 1)
	}
	g.dirty = true

	return nil
}

// SetConnectionWeight sets the weight of the given tap on the edge src->dst.
func (g *Graph) SetConnectionWeight(src, dst, tap int, w float64) error {
	if err := g.boundsCheck(src); err != nil {
		return err
	}
	if err := g.boundsCheck(dst); err != nil {
		return err
	}
	dl := g.adjacency[dst][src]
	if !dl.Connected() {
		return ErrOutOfRange
	}

	return dl.SetWeight(tap, w)
}

// GetConnectionWeight returns the weight of the given tap on the edge src->dst.
func (g *Graph) GetConnectionWeight(src, dst, tap int) (float64, error) {
	if err := g.boundsCheck(src); err != nil {
		return 0, err
	}
	if err := g.boundsCheck(dst); err != nil {
		return 0, err
	}
	dl := g.adjacency[dst][src]
	if !dl.Connected() {
		return 0, ErrOutOfRange
	}

	return dl.Weight(tap)
}

// SetBias sets neuron i's bias weight.
func (g *Graph) SetBias(i int, w float64) error {
	if err := g.boundsCheck(i); err != nil {
		return err
	}
	g.neurons[i].bias = w

	return nil
}

// GetBias returns neuron i's bias weight.
func (g *Graph) GetBias(i int) (float64, error) {
	if err := g.boundsCheck(i); err != nil {
		return 0, err
	}

	return g.neurons[i].bias, nil
}

// DelayLineAt returns the delay line from src to dst, or nil if absent.
func (g *Graph) DelayLineAt(src, dst int) (*DelayLine, error) {
	if err := g.boundsCheck(src); err != nil {
		return nil, err
	}
	if err := g.boundsCheck(dst); err != nil {
		return nil, err
	}

	return g.adjacency[dst][src], nil
}

// InitRandomUniform draws every connected tap weight uniformly from
// [lo, hi]. If src is nil, the graph's default RNG (set via WithRNG) is
// used; if that is also nil, a fixed deterministic source is used.
func (g *Graph) InitRandomUniform(lo, hi float64, src *rng.Source) error {
	s := g.resolveRNG(src)
	n := len(g.neurons)
	for dst := 0; dst < n; dst++ {
		for srcIdx := 0; srcIdx < n; srcIdx++ {
			dl := g.adjacency[dst][srcIdx]
			if !dl.Connected() {
				continue
			}
			for t := 0; t < dl.TapCount(); t++ {
				_ = dl.SetWeight(t, s.Uniform(lo, hi))
			}
		}
	}

	return nil
}

// InitBiasesRandom draws every neuron's bias uniformly from [lo, hi].
func (g *Graph) InitBiasesRandom(lo, hi float64, src *rng.Source) error {
	s := g.resolveRNG(src)
	for _, n := range g.neurons {
		n.bias = s.Uniform(lo, hi)
	}

	return nil
}

func (g *Graph) resolveRNG(src *rng.Source) *rng.Source {
	if src != nil {
		return src
	}
	if g.defaultRNG != nil {
		return g.defaultRNG
	}

	return rng.New(0)
}

// ClearInternalMemory resets every neuron's delay memory to zero without
// touching parameters.
func (g *Graph) ClearInternalMemory() {
	for _, n := range g.neurons {
		n.clearMemory()
	}
}

// Clone returns an independent deep copy of the graph, including a
// recursive copy of every neuron and delay line.
func (g *Graph) Clone() dynsys.System {
	neurons := make([]*neuron, len(g.neurons))
	for i, n := range g.neurons {
		neurons[i] = n.clone()
	}
	adjacency := make([][]*DelayLine, len(g.adjacency))
	for i, row := range g.adjacency {
		adjacency[i] = make([]*DelayLine, len(row))
		for j, dl := range row {
			adjacency[i][j] = dl.clone()
		}
	}
	inputPorts := make(map[int]int, len(g.inputPorts))
	for k, v := range g.inputPorts {
		inputPorts[k] = v
	}
	outputs := make([]int, len(g.outputs))
	copy(outputs, g.outputs)
	topoOrder := make([]int, len(g.topoOrder))
	copy(topoOrder, g.topoOrder)

	return &Graph{
		neurons:    neurons,
		adjacency:  adjacency,
		inputPorts: inputPorts,
		outputs:    outputs,
		paramCount: g.paramCount,
		topoOrder:  topoOrder,
		dirty:      g.dirty,
		defaultRNG: g.defaultRNG,
		logger:     g.logger,
	}
}

var _ dynsys.System = (*Graph)(nil)
