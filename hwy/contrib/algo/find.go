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

package algo

import (
	"github.com/ajroetker/go-highway-algo/hwy"
	"github.com/willf/bitset"
)

// Contains returns true if any element x of slice satisfies "x op target".
//
// Example: does any byte exceed 127?
//
//	found := algo.Contains(buf, hwy.CmpGt, uint8(127))
func Contains[T hwy.Lanes](slice []T, op hwy.CmpOp, target T) bool {
	return BaseIndexOf(slice, prepare(op, target)) >= 0
}

// IndexOf returns the index of the first element x with "x op target",
// or -1 if there is none.
func IndexOf[T hwy.Lanes](slice []T, op hwy.CmpOp, target T) int {
	return BaseIndexOf(slice, prepare(op, target))
}

// LastIndexOf returns the index of the last element x with "x op target",
// or -1 if there is none.
func LastIndexOf[T hwy.Lanes](slice []T, op hwy.CmpOp, target T) int {
	return BaseLastIndexOf(slice, prepare(op, target))
}

// Count returns the number of elements x with "x op target".
func Count[T hwy.Lanes](slice []T, op hwy.CmpOp, target T) int {
	return BaseCount(slice, prepare(op, target))
}

// All returns true if every element x satisfies "x op target". It is true
// for an empty slice.
func All[T hwy.Lanes](slice []T, op hwy.CmpOp, target T) bool {
	return BaseAll(slice, prepare(op, target))
}

// Matches returns the set of indices i with "slice[i] op target".
func Matches[T hwy.Lanes](slice []T, op hwy.CmpOp, target T) *bitset.BitSet {
	set := bitset.New(uint(len(slice)))
	BaseMatches(slice, prepare(op, target), set, 0)
	return set
}
