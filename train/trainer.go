// SPDX-License-Identifier: MIT
package train

import (
	"context"
	"log"
	"math"

	"github.com/katalvlaran/dynnet/dynsys"
	"github.com/katalvlaran/dynnet/lm"
	"github.com/katalvlaran/dynnet/rng"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Trainer runs the multi-trial, expanding-window stepwise training driver
// on top of lm.Run.
type Trainer struct {
	rngSrc *rng.Source
}

// TrainerOption configures a Trainer at construction time.
type TrainerOption func(*Trainer)

// WithRNG binds the random source used for trial weight sampling and output
// heuristic initialization. If never set, a fixed deterministic source is
// used.
func WithRNG(src *rng.Source) TrainerOption {
	return func(t *Trainer) { t.rngSrc = src }
}

// NewTrainer constructs a Trainer.
func NewTrainer(opts ...TrainerOption) *Trainer {
	t := &Trainer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.rngSrc == nil {
		t.rngSrc = rng.New(0)
	}

	return t
}

// Train runs up to opts.MaxIterations independent trials on (u, yDesired)
// alone, with no held-out validation set.
func (t *Trainer) Train(ctx context.Context, sys dynsys.System, u, yDesired *mat.Dense, opts StepOptions) (float64, error) {
	return t.train(ctx, sys, u, yDesired, nil, nil, opts)
}

// TrainValidated runs the same trial loop as Train, but scores each trial
// by training error plus the normalized error on (uValid, yValid).
func (t *Trainer) TrainValidated(ctx context.Context, sys dynsys.System, u, yDesired, uValid, yValid *mat.Dense, opts StepOptions) (float64, error) {
	return t.train(ctx, sys, u, yDesired, uValid, yValid, opts)
}

func (t *Trainer) train(ctx context.Context, sys dynsys.System, u, yDesired, uValid, yValid *mat.Dense, opts StepOptions) (float64, error) {
	samples, _ := u.Dims()
	stepSize := int(math.Min(float64(samples), math.Floor(opts.StepPercentage*float64(samples))))
	if stepSize < 1 {
		stepSize = 1
	}

	initializer := NewOutputInitializer(sys, yDesired, t.rngSrc)

	var lastWeights []float64
	var bestWeights []float64
	longestTrial := 0
	errTotalBest := math.MaxFloat64

	for trial := 1; trial <= opts.MaxIterations; trial++ {
		if err := ctx.Err(); err != nil {
			return errTotalBest, err
		}

		if opts.InitWeightsRandom {
			if err := t.initRandomTrial(sys, u, yDesired, initializer, opts); err != nil {
				return errTotalBest, err
			}
		}

		var tmpBestWeights []float64
		errBest := math.MaxFloat64
		var errValid float64

		j := minInt(stepSize, samples)
		for {
			uWin := windowRows(u, j)
			yWin := windowRows(yDesired, j)

			weights, errCur, err := lm.Run(ctx, sys, uWin, yWin, opts.LMOpts)
			if err != nil {
				return errTotalBest, err
			}
			lastWeights = weights
			sys.ClearInternalMemory()
			if err := sys.SetParameters(weights); err != nil {
				return errTotalBest, err
			}

			if errCur < errBest && j == samples {
				errBest = errCur
				tmpBestWeights = append([]float64(nil), weights...)
				break
			}
			if errCur > math.MaxFloat64/100 {
				break
			}
			if j >= samples {
				break
			}
			j = minInt(samples, j+stepSize)
		}

		errTrain := errBest
		if uValid != nil {
			validSys := sys.Clone()
			yHat, err := validSys.Evaluate(uValid)
			if err != nil {
				return errTotalBest, err
			}
			errValid = normalizedError(yHat, yValid)
			errBest += errValid
		}

		if errBest < errTotalBest && j >= longestTrial {
			errTotalBest = errBest
			longestTrial = j
			bestWeights = tmpBestWeights

			if opts.DisplayIterations {
				if uValid != nil {
					log.Printf("train: trial %d training error=%g validation error=%g", trial, errTrain, errValid)
				} else {
					log.Printf("train: trial %d training error=%g", trial, errTrain)
				}
			}
			if errTotalBest < opts.AbsTol {
				break
			}
		} else if opts.DisplayIterations {
			log.Printf("train: trial %d of %d", trial, opts.MaxIterations)
		}
	}

	if bestWeights == nil {
		bestWeights = lastWeights
	}
	if err := sys.SetParameters(bestWeights); err != nil {
		return errTotalBest, err
	}

	return errTotalBest, nil
}

// initRandomTrial draws RandomSamplesPerIteration candidate parameter
// vectors, keeps the one with the lowest untrained error, and applies it to
// sys.
func (t *Trainer) initRandomTrial(sys dynsys.System, u, yDesired *mat.Dense, initializer OutputInitializer, opts StepOptions) error {
	errWeightInit := math.MaxFloat64
	bestInit := make([]float64, sys.ParameterCount())

	for j := 0; j < opts.RandomSamplesPerIteration; j++ {
		if err := initRandomParameters(sys, opts.MinRandom, opts.MaxRandom, t.rngSrc); err != nil {
			return err
		}
		if opts.InitOutputWeightsSpecial {
			if err := initializer.PerformInitOn(sys); err != nil {
				return err
			}
		}

		cur := calculateWeightError(sys, u, yDesired)
		sys.ClearInternalMemory()
		if cur < errWeightInit {
			errWeightInit = cur
			copy(bestInit, sys.GetParameters())
		}
	}

	return sys.SetParameters(bestInit)
}

// initRandomParameters draws every parameter uniformly from [lo, hi],
// generalizing the original's system-specific init_random to any System
// through the capability interface.
func initRandomParameters(sys dynsys.System, lo, hi float64, src *rng.Source) error {
	p := make([]float64, sys.ParameterCount())
	for i := range p {
		p[i] = src.Uniform(lo, hi)
	}

	return sys.SetParameters(p)
}

// calculateWeightError evaluates sys on u and returns the normalized sum of
// squared errors against yDesired.
func calculateWeightError(sys dynsys.System, u, yDesired *mat.Dense) float64 {
	y, err := sys.Evaluate(u)
	if err != nil {
		return math.MaxFloat64
	}

	rows, cols := yDesired.Dims()
	diffs := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			diffs = append(diffs, y.At(i, j)-yDesired.At(i, j))
		}
	}

	return floats.Dot(diffs, diffs) / float64(rows)
}

// normalizedError computes sum((y-yHat)^2) / (samples+1) over output column
// 0 only, preserving both the first-column restriction and the off-by-one
// denominator of the original's normalized_error.
func normalizedError(yHat, yDesired *mat.Dense) float64 {
	rows, _ := yDesired.Dims()
	diffs := make([]float64, rows)
	for i := 0; i < rows; i++ {
		diffs[i] = yHat.At(i, 0) - yDesired.At(i, 0)
	}

	return floats.Dot(diffs, diffs) / float64(rows+1)
}

// windowRows returns a view over the first n rows of m.
func windowRows(m *mat.Dense, n int) *mat.Dense {
	rows, cols := m.Dims()
	if n >= rows {
		return m
	}

	return m.Slice(0, n, 0, cols).(*mat.Dense)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
