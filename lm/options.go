// SPDX-License-Identifier: MIT
package lm

// Options configures one Run call.
type Options struct {
	MaxIterations      int     // hard cap on inner iterations
	RelTolHorizon      int     // FIFO length over which convergence is measured
	MaxLambda          float64 // upper clamp on damping
	RelTol             float64
	AbsTol             float64
	LambdaIncFactor    float64
	LambdaDecFactor    float64
	DisplayIterations  bool
	UseParallelization bool
	MaxProcs           int // bounds Jacobian column parallelism; <= 0 means unbounded
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations:      500,
		RelTolHorizon:      10,
		MaxLambda:          1e9,
		RelTol:             1e-6,
		AbsTol:             1e-6,
		LambdaIncFactor:    2,
		LambdaDecFactor:    10,
		DisplayIterations:  false,
		UseParallelization: true,
	}
}

// Option mutates an Options value built from DefaultOptions.
type Option func(*Options)

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func WithMaxIterations(n int) Option       { return func(o *Options) { o.MaxIterations = n } }
func WithRelTolHorizon(n int) Option       { return func(o *Options) { o.RelTolHorizon = n } }
func WithMaxLambda(v float64) Option       { return func(o *Options) { o.MaxLambda = v } }
func WithRelTol(v float64) Option          { return func(o *Options) { o.RelTol = v } }
func WithAbsTol(v float64) Option          { return func(o *Options) { o.AbsTol = v } }
func WithLambdaIncFactor(v float64) Option { return func(o *Options) { o.LambdaIncFactor = v } }
func WithLambdaDecFactor(v float64) Option { return func(o *Options) { o.LambdaDecFactor = v } }
func WithDisplayIterations(b bool) Option  { return func(o *Options) { o.DisplayIterations = b } }
func WithParallelization(b bool) Option    { return func(o *Options) { o.UseParallelization = b } }
func WithMaxProcs(n int) Option            { return func(o *Options) { o.MaxProcs = n } }
