// SPDX-License-Identifier: MIT
package lm

import (
	"context"
	"log"
	"math"

	"github.com/katalvlaran/dynnet/dynsys"
	"github.com/katalvlaran/dynnet/jacobian"
	"github.com/katalvlaran/dynnet/linalg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Run executes one damped Gauss-Newton training run over the full dataset
// (u, yDesired), returning the best parameter vector found, its error, and
// any fatal error (a singular damped system). On return, sys's parameters
// are set to the returned best vector.
func Run(ctx context.Context, sys dynsys.System, u, yDesired *mat.Dense, opts Options) ([]float64, float64, error) {
	builder := jacobian.NewBuilder()
	if opts.UseParallelization && opts.MaxProcs > 0 {
		builder = jacobian.NewBuilder(jacobian.WithMaxProcs(opts.MaxProcs))
	} else if !opts.UseParallelization {
		builder = jacobian.NewBuilder(jacobian.WithMaxProcs(1))
	}

	samples, outCount := yDesired.Dims()

	p := sys.GetParameters()
	best := append([]float64(nil), p...)
	errBest := math.MaxFloat64

	lambda := 1.0
	horizon := opts.RelTolHorizon
	if horizon <= 0 {
		horizon = 1
	}
	history := make([]float64, horizon)
	for i := range history {
		history[i] = math.MaxFloat64 / float64(horizon)
	}

	recompute := true
	iterations := 0

	var H *mat.Dense
	var g []float64
	var errCur float64

	for {
		if err := ctx.Err(); err != nil {
			return best, errBest, err
		}

		if err := sys.SetParameters(p); err != nil {
			return best, errBest, err
		}

		if recompute {
			j, err := builder.Build(ctx, sys, u, yDesired)
			if err != nil {
				return best, errBest, err
			}
			H = new(mat.Dense)
			H.Mul(j.T(), j)

			sys.ClearInternalMemory()
			yModel, err := sys.Evaluate(u)
			if err != nil {
				return best, errBest, err
			}

			resid := make([]float64, samples*outCount)
			for s := 0; s < samples; s++ {
				for k := 0; k < outCount; k++ {
					resid[s*outCount+k] = yDesired.At(s, k) - yModel.At(s, k)
				}
			}
			r := mat.NewVecDense(len(resid), resid)
			errCur = floats.Dot(resid, resid) / float64(samples)
			if math.IsNaN(errCur) || math.IsInf(errCur, 0) {
				errCur = math.MaxFloat64
			}
			if iterations == 0 {
				errBest = errCur
				best = append([]float64(nil), p...)
			}

			gv := new(mat.VecDense)
			gv.MulVec(j.T(), r)
			g = make([]float64, gv.Len())
			for i := range g {
				g[i] = gv.AtVec(i)
			}
		}

		n := H.RawMatrix().Rows
		a, err := linalg.NewDense(n, n)
		if err != nil {
			return best, errBest, err
		}
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				v := H.At(i, k)
				if i == k {
					v += lambda * H.At(i, i)
				}
				_ = a.Set(i, k, v)
			}
		}

		history = pushHistory(history, errCur)
		errChange := maxAdjacentChange(history)

		if errCur < opts.AbsTol || iterations >= opts.MaxIterations || errChange < opts.RelTol {
			break
		}

		delta, err := linalg.Solve(a, g)
		if err != nil {
			return best, errBest, err
		}

		pPrime := make([]float64, len(p))
		for i := range p {
			pPrime[i] = p[i] + delta[i]
		}

		if err := sys.SetParameters(pPrime); err != nil {
			return best, errBest, err
		}
		sys.ClearInternalMemory()
		yPrime, err := sys.Evaluate(u)
		if err != nil {
			return best, errBest, err
		}
		residPrime := make([]float64, samples*outCount)
		for s := 0; s < samples; s++ {
			for k := 0; k < outCount; k++ {
				residPrime[s*outCount+k] = yDesired.At(s, k) - yPrime.At(s, k)
			}
		}
		errPrime := floats.Dot(residPrime, residPrime) / float64(samples)
		if math.IsNaN(errPrime) || math.IsInf(errPrime, 0) {
			errPrime = math.MaxFloat64
		}

		if errPrime < errCur {
			p = pPrime
			lambda /= opts.LambdaDecFactor
			recompute = true
			if errPrime < errBest {
				errBest = errPrime
				best = append([]float64(nil), pPrime...)
			}
		} else {
			lambda = math.Min(opts.MaxLambda, lambda*opts.LambdaIncFactor)
			recompute = false
		}

		if opts.DisplayIterations {
			log.Printf("lm: iteration %d error=%g lambda=%g", iterations, errCur, lambda)
		}

		iterations++
	}

	if err := sys.SetParameters(best); err != nil {
		return best, errBest, err
	}
	if math.IsNaN(errBest) || math.IsInf(errBest, 0) {
		return best, errBest, ErrNumericalInstability
	}

	return best, errBest, nil
}

// pushHistory drops the oldest entry and appends v, preserving length.
func pushHistory(history []float64, v float64) []float64 {
	copy(history, history[1:])
	history[len(history)-1] = v

	return history
}

// maxAdjacentChange returns the maximum absolute difference between
// adjacent elements of history.
func maxAdjacentChange(history []float64) float64 {
	max := 0.0
	for i := 1; i < len(history); i++ {
		d := math.Abs(history[i] - history[i-1])
		if d > max {
			max = d
		}
	}

	return max
}
