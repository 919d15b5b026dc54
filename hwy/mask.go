// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import (
	"errors"
	"fmt"
)

var errPartialLane = errors.New("hwy: comparison produced a partially set lane")

// Mask represents the result of a comparison operation.
//
// The raw lanes hold exactly what the comparison primitive produced. When a
// rule is derived by negation (NotEqualTo from EqualTo, GreaterThanOrEqualTo
// from LessThan, ...) the mask is inverted and every accessor reads the raw
// lanes negated, the way a movemask result is complemented after the fact.
//
// Mask instances should not be created directly; use Compare or the
// comparison wrappers like Equal, LessThan, or GreaterThan instead.
type Mask[T Lanes] struct {
	// bits stores the raw lane results; bit i is set if lane i was all ones.
	bits []bool

	inverted bool
}

// maskFromRegister converts a comparison result into a mask. Every lane must
// be all ones or all zeros; anything else is a kernel bug.
func maskFromRegister[T Lanes](r register, inverted bool) Mask[T] {
	ones := r.kind.LaneOnes()
	bits := make([]bool, len(r.lanes))
	for i, x := range r.lanes {
		switch x {
		case ones:
			bits[i] = true
		case 0:
		default:
			panic(fmt.Errorf("%w: lane %d = %#x (%s)", errPartialLane, i, x, r.kind))
		}
	}
	return Mask[T]{bits: bits, inverted: inverted}
}

// MaskFromBools builds a direct-polarity mask from per-lane results.
func MaskFromBools[T Lanes](lanes []bool) Mask[T] {
	bits := make([]bool, len(lanes))
	copy(bits, lanes)
	return Mask[T]{bits: bits}
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// Inverted reports whether the raw lanes must be read negated.
func (m Mask[T]) Inverted() bool {
	return m.inverted
}

// RawBit returns the primitive's result for lane i, ignoring polarity.
func (m Mask[T]) RawBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i] != m.inverted
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if bit == m.inverted {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit != m.inverted {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	raw := 0
	for _, bit := range m.bits {
		if bit {
			raw++
		}
	}
	if m.inverted {
		return len(m.bits) - raw
	}
	return raw
}

// FindFirstTrue returns the index of the first active lane, or -1.
func (m Mask[T]) FindFirstTrue() int {
	for i, bit := range m.bits {
		if bit != m.inverted {
			return i
		}
	}
	return -1
}

// FindLastTrue returns the index of the last active lane, or -1.
func (m Mask[T]) FindLastTrue() int {
	for i := len(m.bits) - 1; i >= 0; i-- {
		if m.bits[i] != m.inverted {
			return i
		}
	}
	return -1
}

// BitsFromMask returns the active lanes as a bit field, lane 0 in bit 0.
// Only the first 64 lanes are represented.
func (m Mask[T]) BitsFromMask() uint64 {
	var out uint64
	for i := 0; i < len(m.bits) && i < 64; i++ {
		if m.bits[i] != m.inverted {
			out |= 1 << uint(i)
		}
	}
	return out
}

// Resolve folds the polarity into the lanes and returns a direct mask.
func (m Mask[T]) Resolve() Mask[T] {
	bits := make([]bool, len(m.bits))
	for i, bit := range m.bits {
		bits[i] = bit != m.inverted
	}
	return Mask[T]{bits: bits}
}

// ExcludeTail neutralizes every lane at index valid or above so that it
// reads as inactive. A direct mask has those raw lanes cleared; an inverted
// mask has them set, since they are read negated.
func (m Mask[T]) ExcludeTail(valid int) Mask[T] {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	for i := max(valid, 0); i < len(bits); i++ {
		bits[i] = m.inverted
	}
	return Mask[T]{bits: bits, inverted: m.inverted}
}

// ApplyTail applies a tail plan computed by PlanTail to a mask whose first
// valid lanes hold real data.
func (m Mask[T]) ApplyTail(action TailAction, valid int) Mask[T] {
	switch action {
	case TailClear, TailSet:
		if (action == TailSet) != m.inverted {
			panic(fmt.Errorf("hwy: tail plan %s does not match mask polarity (inverted=%v)", action, m.inverted))
		}
		return m.ExcludeTail(valid)
	default:
		return m
	}
}

// FirstN returns a direct mask of lanes lanes with the first n active.
func FirstN[T Lanes](lanes, n int) Mask[T] {
	bits := make([]bool, lanes)
	for i := 0; i < n && i < lanes; i++ {
		bits[i] = true
	}
	return Mask[T]{bits: bits}
}

// MaskAnd returns the lanes active in both a and b as a direct mask.
func MaskAnd[T Lanes](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.GetBit(i) && b.GetBit(i)
	}
	return Mask[T]{bits: bits}
}

// MaskOr returns the lanes active in a or b as a direct mask.
func MaskOr[T Lanes](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.GetBit(i) || b.GetBit(i)
	}
	return Mask[T]{bits: bits}
}

// MaskNot returns the complement of m. It only toggles the polarity.
func MaskNot[T Lanes](m Mask[T]) Mask[T] {
	return Mask[T]{bits: m.bits, inverted: !m.inverted}
}
