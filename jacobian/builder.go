// SPDX-License-Identifier: MIT
// Package jacobian computes the forward-difference numerical Jacobian of a
// dynsys.System's batch outputs with respect to its parameter vector,
// fanning the per-parameter column computations out across a worker pool.
package jacobian

import (
	"context"
	"math"

	"github.com/katalvlaran/dynnet/dynsys"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// MachineEpsilon is the float64 machine epsilon used to size the forward-
// difference step.
const MachineEpsilon = 2.220446049250313e-16

// Builder assembles numerical Jacobians for a dynsys.System.
type Builder struct {
	maxProcs int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMaxProcs bounds the number of concurrent column computations. A value
// <= 0 means unbounded (errgroup.SetLimit is not called).
func WithMaxProcs(n int) BuilderOption {
	return func(b *Builder) { b.maxProcs = n }
}

// NewBuilder constructs a Builder with the given options.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build produces the Jacobian J of shape [S*O x P] where row s*O+k, column i
// holds (y_k(p) - y_k(p with p_i <- p_i - eps_i)) / eps_i, with
// eps_i = max(1, |p_i|) * sqrt(MachineEpsilon). Each column runs against an
// independent sys.Clone() so that internal memory accumulated during its
// sample loop never leaks across columns. Parallelism is bounded by
// WithMaxProcs; ordering of column completion does not affect the result.
func (b *Builder) Build(ctx context.Context, sys dynsys.System, u *mat.Dense, yDesired *mat.Dense) (*mat.Dense, error) {
	samples, _ := u.Dims()
	outRows, outCols := yDesired.Dims()
	if outRows != samples || outCols != sys.OutputCount() {
		return nil, ErrDimensionMismatch
	}

	p := sys.GetParameters()
	paramCount := len(p)
	outCount := sys.OutputCount()

	j := mat.NewDense(samples*outCount, paramCount, nil)

	baseline, err := evaluateFresh(sys.Clone(), u)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if b.maxProcs > 0 {
		g.SetLimit(b.maxProcs)
	}

	for i := 0; i < paramCount; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			eps := math.Max(1, math.Abs(p[i])) * math.Sqrt(MachineEpsilon)

			perturbed := sys.Clone()
			pp := perturbed.GetParameters()
			pp[i] -= eps
			if err := perturbed.SetParameters(pp); err != nil {
				return err
			}

			after, err := evaluateFresh(perturbed, u)
			if err != nil {
				return err
			}

			for s := 0; s < samples; s++ {
				for k := 0; k < outCount; k++ {
					diff := (baseline.At(s, k) - after.At(s, k)) / eps
					j.Set(s*outCount+k, i, diff)
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return j, nil
}

// evaluateFresh clears the system's internal memory, runs it over u, and
// returns the output matrix, isolating any memory accumulated by this call.
func evaluateFresh(sys dynsys.System, u *mat.Dense) (*mat.Dense, error) {
	sys.ClearInternalMemory()

	return sys.Evaluate(u)
}
