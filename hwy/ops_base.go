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

// This file provides vector construction and the bitwise lane operations.
// Functions without a lanes argument size their vectors for the current
// dispatch level.

// Load creates a vector by loading data from a slice.
func Load[T Lanes](src []T) Vec[T] {
	return LoadN(src, MaxLanes[T]())
}

// LoadN loads up to lanes elements from src.
func LoadN[T Lanes](src []T, lanes int) Vec[T] {
	n := min(len(src), lanes)
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// LoadPadded loads a full vector of lanes elements from src, filling the
// lanes past the end of src with filler.
func LoadPadded[T Lanes](src []T, lanes int, filler T) Vec[T] {
	data := make([]T, lanes)
	n := copy(data, src)
	for i := n; i < lanes; i++ {
		data[i] = filler
	}
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with all lanes set to the same value.
func Set[T Lanes](value T) Vec[T] {
	return SetN(MaxLanes[T](), value)
}

// SetN creates a vector of lanes lanes set to value.
func SetN[T Lanes](lanes int, value T) Vec[T] {
	data := make([]T, lanes)
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

// IfThenElse performs conditional selection.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(b.data), min(len(a.data), mask.NumLanes()))
	result := make([]T, n)
	for i := range n {
		if mask.GetBit(i) {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

func bitwise[T Lanes](a, b Vec[T], f func(x, y uint64) uint64) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fromBits[T](f(toBits(a.data[i]), toBits(b.data[i])))
	}
	return Vec[T]{data: result}
}

// And performs element-wise bitwise AND.
func And[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return x & y })
}

// Or performs element-wise bitwise OR.
func Or[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return x | y })
}

// Xor performs element-wise bitwise XOR.
func Xor[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return x ^ y })
}

// Not performs element-wise bitwise NOT (ones complement).
func Not[T Lanes](v Vec[T]) Vec[T] {
	return bitwise(v, v, func(x, _ uint64) uint64 { return ^x })
}

// AndNot performs element-wise bitwise AND NOT (~a & b).
func AndNot[T Lanes](a, b Vec[T]) Vec[T] {
	return bitwise(a, b, func(x, y uint64) uint64 { return ^x & y })
}

// compareCurrent evaluates op on the current level, falling back to the
// scalar rules where the tier cannot realize the combination.
func compareCurrent[T Lanes](a, b Vec[T], op CmpOp) Mask[T] {
	level := currentLevel
	if !Supports(KindOf[T](), op, level) {
		level = DispatchScalar
	}
	return Compare(a, b, op, level)
}

// Equal performs element-wise equality comparison.
func Equal[T Lanes](a, b Vec[T]) Mask[T] {
	return compareCurrent(a, b, CmpEq)
}

// NotEqual performs element-wise inequality comparison.
func NotEqual[T Lanes](a, b Vec[T]) Mask[T] {
	return compareCurrent(a, b, CmpNe)
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Lanes](a, b Vec[T]) Mask[T] {
	return compareCurrent(a, b, CmpLt)
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Lanes](a, b Vec[T]) Mask[T] {
	return compareCurrent(a, b, CmpGt)
}

// LessEqual performs element-wise less-than-or-equal comparison.
func LessEqual[T Lanes](a, b Vec[T]) Mask[T] {
	return compareCurrent(a, b, CmpLe)
}

// GreaterEqual performs element-wise greater-than-or-equal comparison.
func GreaterEqual[T Lanes](a, b Vec[T]) Mask[T] {
	return compareCurrent(a, b, CmpGe)
}
