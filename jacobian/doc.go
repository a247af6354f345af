// SPDX-License-Identifier: MIT
// Package jacobian computes forward-difference numerical Jacobians over a
// dynsys.System, fanning per-parameter column computations out across an
// errgroup-managed worker pool (see Builder, WithMaxProcs).
package jacobian
