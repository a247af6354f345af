// SPDX-License-Identifier: MIT
package graph

import "fmt"

// Tap is a single (delay index, weight) pair on a DelayLine.
//
// DelayIndex 0 means "this tick's output"; DelayIndex d > 0 means "the
// source's output from d ticks ago".
type Tap struct {
	DelayIndex int
	Weight     float64
}

// DelayLine is an edge payload from a source neuron to a destination
// neuron: an ordered list of taps, ascending by DelayIndex, with at most one
// tap at DelayIndex 0.
type DelayLine struct {
	taps []Tap
}

// NewDelayLine builds a single-tap DelayLine. A weight of 0 together with
// delayIndex 0 is still a valid instantaneous tap; callers wanting the
// original source's "single-tap defaults to weight 1" convenience should
// pass weight explicitly.
func NewDelayLine(delayIndex int, weight float64) (*DelayLine, error) {
	if delayIndex < 0 {
		return nil, ErrOutOfRange
	}

	return &DelayLine{taps: []Tap{{DelayIndex: delayIndex, Weight: weight}}}, nil
}

// NewDelayLineTaps builds a DelayLine from an explicit tap list. Taps are
// sorted ascending by DelayIndex; a duplicate DelayIndex 0 is rejected.
func NewDelayLineTaps(taps []Tap) (*DelayLine, error) {
	if len(taps) == 0 {
		return nil, ErrOutOfRange
	}
	sorted := make([]Tap, len(taps))
	copy(sorted, taps)
	for i := range sorted {
		if sorted[i].DelayIndex < 0 {
			return nil, ErrOutOfRange
		}
	}
	// Insertion sort: tap lists are small (handful of delays per edge).
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].DelayIndex > sorted[j].DelayIndex; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	zeroCount := 0
	for _, t := range sorted {
		if t.DelayIndex == 0 {
			zeroCount++
		}
	}
	if zeroCount > 1 {
		return nil, fmt.Errorf("%w: duplicate instantaneous tap", ErrOutOfRange)
	}

	return &DelayLine{taps: sorted}, nil
}

// Connected reports whether this delay line has at least one tap.
func (d *DelayLine) Connected() bool {
	return d != nil && len(d.taps) > 0
}

// Instantaneous reports whether the line has a tap at delay 0.
func (d *DelayLine) Instantaneous() bool {
	if !d.Connected() {
		return false
	}

	return d.taps[0].DelayIndex == 0
}

// HasDelays reports whether the line's last tap has a positive delay.
// A mixed line (instantaneous tap plus delayed taps) reports true here too.
func (d *DelayLine) HasDelays() bool {
	if !d.Connected() {
		return false
	}

	return d.taps[len(d.taps)-1].DelayIndex > 0
}

// MaxDelay returns the largest DelayIndex on this line, or 0 if disconnected.
func (d *DelayLine) MaxDelay() int {
	if !d.Connected() {
		return 0
	}

	return d.taps[len(d.taps)-1].DelayIndex
}

// TapCount returns the number of taps on this line.
func (d *DelayLine) TapCount() int {
	if d == nil {
		return 0
	}

	return len(d.taps)
}

// Taps returns the ordered tap list. The returned slice must not be mutated
// by the caller; use SetWeight to change a tap's weight.
func (d *DelayLine) Taps() []Tap {
	if d == nil {
		return nil
	}

	return d.taps
}

// Weight returns the weight of the tap at tapIndex.
func (d *DelayLine) Weight(tapIndex int) (float64, error) {
	if d == nil || tapIndex < 0 || tapIndex >= len(d.taps) {
		return 0, ErrOutOfRange
	}

	return d.taps[tapIndex].Weight, nil
}

// SetWeight assigns the weight of the tap at tapIndex.
func (d *DelayLine) SetWeight(tapIndex int, w float64) error {
	if d == nil || tapIndex < 0 || tapIndex >= len(d.taps) {
		return ErrOutOfRange
	}
	d.taps[tapIndex].Weight = w

	return nil
}

// clone returns a deep copy of the delay line.
func (d *DelayLine) clone() *DelayLine {
	if d == nil {
		return nil
	}
	taps := make([]Tap, len(d.taps))
	copy(taps, d.taps)

	return &DelayLine{taps: taps}
}
