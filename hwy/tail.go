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

import "math"

// Operand is a comparison target that is either known before the scan starts
// (a constant at the call site) or only observed at run time.
type Operand[T Lanes] struct {
	value T
	known bool
}

// Known returns an operand whose value is available to the tail policy.
func Known[T Lanes](v T) Operand[T] {
	return Operand[T]{value: v, known: true}
}

// Unknown returns an operand the tail policy must treat as arbitrary.
func Unknown[T Lanes]() Operand[T] {
	return Operand[T]{}
}

// Value returns the operand's value and whether it is known.
func (o Operand[T]) Value() (T, bool) {
	return o.value, o.known
}

// NeedsMasking reports whether filler lanes in a final, partial vector can
// turn into spurious matches of "lane op target", and must therefore be
// excluded before the chunk's mask is folded into a count or an any-match.
//
// With a known target the answer is exact: the filler matches or it does not.
// With an unknown target the answer is true unless the filler cannot satisfy
// op against any value of T: GreaterThan with the type's minimum (-Inf for
// floats), LessThan with the type's maximum (+Inf), or any ordered operator
// with a NaN filler. NotEqualTo always needs masking.
func NeedsMasking[T Lanes](op CmpOp, target Operand[T], filler T) bool {
	if target.known {
		return CompareScalar(filler, target.value, op)
	}
	return fillerCanMatch(op, filler)
}

func fillerCanMatch[T Lanes](op CmpOp, filler T) bool {
	k := KindOf[T]()
	if k.IsFloat() {
		f := float64(filler)
		if math.IsNaN(f) {
			return op == CmpNe
		}
		switch op {
		case CmpGt:
			return !math.IsInf(f, -1)
		case CmpLt:
			return !math.IsInf(f, 1)
		}
		return true
	}

	bits := toBits(filler)
	switch op {
	case CmpGt:
		return bits != minBits(k)
	case CmpLt:
		return bits != maxBits(k)
	}
	return true
}

// minBits returns the bit pattern of the smallest integer of kind k.
func minBits(k Kind) uint64 {
	if k.IsSigned() {
		return k.SignBit()
	}
	return 0
}

// maxBits returns the bit pattern of the largest integer of kind k.
func maxBits(k Kind) uint64 {
	if k.IsSigned() {
		return k.SignBit() - 1
	}
	return k.LaneOnes()
}

// TailAction is how a partial final vector's mask must be treated.
type TailAction uint8

const (
	// TailKeep: filler lanes can never match, use the mask as is.
	TailKeep TailAction = iota

	// TailClear: the mask has direct polarity; clear the filler lanes.
	TailClear

	// TailSet: the mask is inverted; set the filler lanes' raw bits so
	// they read as inactive.
	TailSet
)

func (a TailAction) String() string {
	switch a {
	case TailKeep:
		return "keep"
	case TailClear:
		return "clear"
	case TailSet:
		return "set"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a TailAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// PlanTail combines NeedsMasking with the polarity of the rule level uses
// for (T, op). The same inputs can produce different plans on different
// tiers: unsigned 32-bit GreaterThanOrEqualTo is a direct max/equal on
// SSE4.1 but an inverted LessThan on SSE2 and AVX2.
func PlanTail[T Lanes](op CmpOp, target Operand[T], filler T, level DispatchLevel) TailAction {
	if !NeedsMasking(op, target, filler) {
		return TailKeep
	}
	if InvertsResult(KindOf[T](), op, level) {
		return TailSet
	}
	return TailClear
}

// TailMask creates a mask with the first 'count' of lanes lanes active.
// This is useful for handling the tail (remainder) of an array
// when the size is not a multiple of the vector width.
func TailMask[T Lanes](lanes, count int) Mask[T] {
	return FirstN[T](lanes, max(count, 0))
}

// ProcessWithTail is a helper for processing arrays with SIMD that handles
// both full vectors and the tail (remainder) automatically.
//
// It calls:
//   - fullFn(offset) for each full vector (offset is the starting index)
//   - tailFn(offset, count) once for the tail if size is not a multiple of vector width
func ProcessWithTail[T Lanes](level DispatchLevel, size int, fullFn func(offset int), tailFn func(offset, count int)) {
	lanes := LanesFor[T](level)

	// Process full vectors
	fullVectors := size / lanes
	for i := range fullVectors {
		fullFn(i * lanes)
	}

	// Process tail if any
	remaining := size % lanes
	if remaining > 0 {
		tailFn(fullVectors*lanes, remaining)
	}
}

// AlignedSize rounds up size to the next multiple of vector width.
// This is useful for allocating buffers that will be processed with SIMD.
func AlignedSize[T Lanes](level DispatchLevel, size int) int {
	lanes := LanesFor[T](level)
	if lanes == 0 {
		return size
	}
	return ((size + lanes - 1) / lanes) * lanes
}

// IsAligned returns true if size is a multiple of vector width.
func IsAligned[T Lanes](level DispatchLevel, size int) bool {
	lanes := LanesFor[T](level)
	if lanes == 0 {
		return true
	}
	return size%lanes == 0
}
