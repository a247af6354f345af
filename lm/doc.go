// SPDX-License-Identifier: MIT
// Package lm implements the Levenberg-Marquardt damped Gauss-Newton inner
// training loop over a dynsys.System: adaptive damping via Marquardt-style
// diagonal scaling (A = H + lambda*diag(H)), trust-region step acceptance,
// and relative/absolute convergence tracking over a bounded error history.
//
// Run(ctx, sys, u, yDesired, opts) drives one full training run to
// completion (convergence, iteration cap, or fatal solver error) and writes
// the best parameters found back onto sys.
package lm
