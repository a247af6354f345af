// SPDX-License-Identifier: MIT
package lm

import "errors"

// ErrNumericalInstability indicates the final best error remained
// non-finite after clamping, signaling the run never found a usable step.
var ErrNumericalInstability = errors.New("lm: numerical instability")
