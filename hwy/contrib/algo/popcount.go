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

import "github.com/ajroetker/go-highway-algo/hwy"

// CountBits transforms every element e of slice with op against mask and
// returns the total number of set bits, e.g. the Hamming distance between
// slice and a repeated pattern with op XOR.
func CountBits[T hwy.Integers](slice []T, mask T, op hwy.BitwiseOp) uint64 {
	return BaseCountBits(slice, mask, op, hwy.CurrentLevel())
}

// BaseCountBits counts one vector at a time. The final vector is loaded
// short rather than padded: a complementing op would count the filler's
// bits.
func BaseCountBits[T hwy.Integers](slice []T, mask T, op hwy.BitwiseOp, level hwy.DispatchLevel) uint64 {
	lanes := hwy.LanesFor[T](level)
	var total uint64
	for i := 0; i < len(slice); i += lanes {
		total += hwy.PopCountBitwise(hwy.LoadN(slice[i:], lanes), mask, op)
	}
	return total
}
