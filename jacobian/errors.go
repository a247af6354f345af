// SPDX-License-Identifier: MIT
package jacobian

import "errors"

// ErrDimensionMismatch indicates the desired-output matrix shape does not
// match the system's declared output count or the input sample count.
var ErrDimensionMismatch = errors.New("jacobian: dimension mismatch")
