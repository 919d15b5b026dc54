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
	"math/bits"

	"github.com/ajroetker/go-highway-algo/hwy"
	"github.com/willf/bitset"
)

// The base kernels scan slice one vector at a time with a prepared
// predicate. Offsets they report are relative to slice.

// BaseIndexOf returns the index of the first element matching p, or -1.
func BaseIndexOf[T hwy.Lanes](slice []T, p Prepared[T]) int {
	for i := 0; i < len(slice); i += p.lanes {
		if idx := p.Apply(slice[i:]).FindFirstTrue(); idx >= 0 {
			return i + idx
		}
	}
	return -1
}

// BaseLastIndexOf returns the index of the last element matching p, or -1.
func BaseLastIndexOf[T hwy.Lanes](slice []T, p Prepared[T]) int {
	n := len(slice)
	if n == 0 {
		return -1
	}
	// Chunks stay aligned to the start of the slice so that only the final
	// one is partial.
	for i := (n - 1) / p.lanes * p.lanes; i >= 0; i -= p.lanes {
		if idx := p.Apply(slice[i:]).FindLastTrue(); idx >= 0 {
			return i + idx
		}
	}
	return -1
}

// BaseCount returns the number of elements matching p.
func BaseCount[T hwy.Lanes](slice []T, p Prepared[T]) int {
	count := 0
	for i := 0; i < len(slice); i += p.lanes {
		count += p.Apply(slice[i:]).CountTrue()
	}
	return count
}

// BaseAll returns true if every element matches p. Short-circuits on the
// first vector with a non-matching element.
func BaseAll[T hwy.Lanes](slice []T, p Prepared[T]) bool {
	for i := 0; i < len(slice); i += p.lanes {
		valid := min(p.lanes, len(slice)-i)
		if p.Apply(slice[i:]).CountTrue() != valid {
			return false
		}
	}
	return true
}

// BaseMatches sets bit offset+i of set for every element i matching p.
func BaseMatches[T hwy.Lanes](slice []T, p Prepared[T], set *bitset.BitSet, offset int) {
	for i := 0; i < len(slice); i += p.lanes {
		for word := p.Apply(slice[i:]).BitsFromMask(); word != 0; word &= word - 1 {
			set.Set(uint(offset + i + bits.TrailingZeros64(word)))
		}
	}
}
