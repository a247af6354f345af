// SPDX-License-Identifier: MIT
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math"
)

// sqrt is a thin wrapper kept local to this package so the exported API
// surface above reads uniformly with the rest of the arithmetic helpers.
func sqrt(x float64) float64 {
	return math.Sqrt(x)
}

// cryptoSeed fills buf from crypto/rand and interprets it as an int64 seed.
// Falls back to defaultSeed if the OS entropy source is unavailable.
func cryptoSeed(buf []byte) int64 {
	if _, err := rand.Read(buf); err != nil {
		return defaultSeed
	}

	return int64(binary.LittleEndian.Uint64(buf))
}
