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
	"fmt"
	"math/bits"
	"strings"
)

// BitwiseOp selects the transform applied to every element, against a
// broadcast operand mask, before its set bits are counted.
type BitwiseOp uint8

const (
	BitNone   BitwiseOp = iota // e
	BitNot                     // ^e
	BitAnd                     // e & m
	BitOr                      // e | m
	BitXor                     // e ^ m
	BitNand                    // ^(e & m)
	BitNor                     // ^(e | m)
	BitXnor                    // ^(e ^ m)
	BitAndNot                  // ^e & m
	BitOrNot                   // ^e | m
	BitXorNot                  // alias of BitXnor

	numBitwiseOps
)

var bitwiseOpNames = [numBitwiseOps]string{"NONE", "NOT", "AND", "OR", "XOR", "NAND", "NOR", "XNOR", "ANDNOT", "ORNOT", "XORNOT"}

func (op BitwiseOp) String() string {
	if op < numBitwiseOps {
		return bitwiseOpNames[op]
	}
	return fmt.Sprintf("BitwiseOp(%d)", uint8(op))
}

// MarshalText implements encoding.TextMarshaler.
func (op BitwiseOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// AllBitwiseOps lists all 11 operation tags, aliases included.
func AllBitwiseOps() []BitwiseOp {
	ops := make([]BitwiseOp, numBitwiseOps)
	for i := range ops {
		ops[i] = BitwiseOp(i)
	}
	return ops
}

// Canonical maps alias tags to the tag the kernels implement.
func (op BitwiseOp) Canonical() BitwiseOp {
	if op == BitXorNot {
		return BitXnor
	}
	return op
}

// ParseBitwiseOp canonicalizes an operation name such as "xor", "andnot" or
// "xornot". The result is always a canonical tag.
func ParseBitwiseOp(s string) (BitwiseOp, error) {
	name := strings.ToUpper(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	for i, n := range bitwiseOpNames {
		if n == name {
			return BitwiseOp(i).Canonical(), nil
		}
	}
	return 0, fmt.Errorf("hwy: unknown bitwise operation %q", s)
}

// transformBits applies op to raw lane bits. The result may carry set bits
// above the element width for the complementing operations; callers mask it.
func transformBits(e, m uint64, op BitwiseOp) uint64 {
	switch op.Canonical() {
	case BitNone:
		return e
	case BitNot:
		return ^e
	case BitAnd:
		return e & m
	case BitOr:
		return e | m
	case BitXor:
		return e ^ m
	case BitNand:
		return ^(e & m)
	case BitNor:
		return ^(e | m)
	case BitXnor:
		return ^(e ^ m)
	case BitAndNot:
		return ^e & m
	case BitOrNot:
		return ^e | m
	}
	panic(fmt.Errorf("hwy: unknown bitwise operation %d", uint8(op)))
}

// Transform applies op to a single element e with operand m.
func Transform[T Integers](e, m T, op BitwiseOp) T {
	return fromBits[T](transformBits(toBits(e), toBits(m), op))
}

// TransformVec applies op lane by lane.
func TransformVec[T Integers](v Vec[T], m T, op BitwiseOp) Vec[T] {
	result := make([]T, len(v.data))
	for i, e := range v.data {
		result[i] = Transform(e, m, op)
	}
	return Vec[T]{data: result}
}

// PopCountBitwise transforms every lane of v with op against m and returns
// the total number of set bits.
//
// 8 and 16-bit lanes are zero-extended into 32-bit lanes first, as the
// popcount instructions work on the wider lanes. A complement sets the
// upper bits of the widened lane, so the result is masked back down to the
// element width before counting.
func PopCountBitwise[T Integers](v Vec[T], m T, op BitwiseOp) uint64 {
	k := KindOf[T]()
	lane := k
	if k.Bits() < 32 {
		lane = KindUint32
	}

	wide := newRegister(lane, len(v.data))
	for i, e := range v.data {
		wide.lanes[i] = toBits(e)
	}
	mb := toBits(m)
	keep := k.LaneOnes()

	var total uint64
	for _, e := range wide.lanes {
		x := transformBits(e, mb, op) & lane.LaneOnes()
		total += uint64(bits.OnesCount64(x & keep))
	}
	return total
}

// PopCount counts the number of set bits (1s) in each lane.
func PopCount[T Integers](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = popCount(v.data[i])
	}
	return Vec[T]{data: result}
}

// popCount counts set bits for a single value.
func popCount[T Integers](val T) T {
	return T(bits.OnesCount64(toBits(val)))
}
