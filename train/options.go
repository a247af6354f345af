// SPDX-License-Identifier: MIT
package train

import "github.com/katalvlaran/dynnet/lm"

// StepOptions configures one Trainer.Train / TrainValidated call.
type StepOptions struct {
	DisplayIterations         bool
	InitWeightsRandom         bool
	InitOutputWeightsSpecial  bool
	MaxIterations             int // number of independent trials
	RandomSamplesPerIteration int
	StepPercentage            float64
	AbsTol                    float64
	MinRandom                 float64
	MaxRandom                 float64
	LMOpts                    lm.Options
}

// DefaultStepOptions returns the documented defaults.
func DefaultStepOptions() StepOptions {
	return StepOptions{
		DisplayIterations:         false,
		InitWeightsRandom:         true,
		InitOutputWeightsSpecial:  false,
		MaxIterations:             100,
		RandomSamplesPerIteration: 10,
		StepPercentage:            0.5,
		AbsTol:                    1e-3,
		MinRandom:                 -0.5,
		MaxRandom:                 0.5,
		LMOpts:                    lm.DefaultOptions(),
	}
}

// StepOption mutates a StepOptions value built from DefaultStepOptions.
type StepOption func(*StepOptions)

// NewStepOptions applies opts over DefaultStepOptions.
func NewStepOptions(opts ...StepOption) StepOptions {
	o := DefaultStepOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func WithDisplayIterations(b bool) StepOption        { return func(o *StepOptions) { o.DisplayIterations = b } }
func WithInitWeightsRandom(b bool) StepOption        { return func(o *StepOptions) { o.InitWeightsRandom = b } }
func WithInitOutputWeightsSpecial(b bool) StepOption { return func(o *StepOptions) { o.InitOutputWeightsSpecial = b } }
func WithMaxIterations(n int) StepOption             { return func(o *StepOptions) { o.MaxIterations = n } }
func WithRandomSamplesPerIteration(n int) StepOption {
	return func(o *StepOptions) { o.RandomSamplesPerIteration = n }
}
func WithStepPercentage(v float64) StepOption { return func(o *StepOptions) { o.StepPercentage = v } }
func WithAbsTol(v float64) StepOption         { return func(o *StepOptions) { o.AbsTol = v } }
func WithRandomRange(lo, hi float64) StepOption {
	return func(o *StepOptions) { o.MinRandom, o.MaxRandom = lo, hi }
}
func WithLMOptions(lmOpts lm.Options) StepOption { return func(o *StepOptions) { o.LMOpts = lmOpts } }
