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

// Package algo provides slice algorithms built on the hwy comparison kernel.
// This package corresponds to Google Highway's hwy/contrib/algo directory.
//
// # Search and count
//
// Every search takes a comparison operator and a target, and tests
// "element op target" one vector at a time:
//   - Contains, IndexOf, LastIndexOf, Count, All
//   - Matches, which returns the matching positions as a *bitset.BitSet
//   - IsSorted, which compares each vector with the next element's vector
//
// The dispatch level is read once per call. When that level cannot evaluate
// the operator on the element type (64-bit ordering on SSE2) the whole call
// runs on the scalar tier. The final, partial vector is padded with zeros and
// its mask is neutralized only when a zero could match.
//
// # Reductions
//
//   - Sum picks the narrowest overflow-free accumulator for the slice length
//     and returns a Total; float slices are summed in float64 with vek.
//   - CountBits counts the set bits of every element after a fused bitwise
//     transform against a mask.
//
// # Parallel variants
//
// ParallelContains, ParallelIndexOf, ParallelCount, ParallelSum and
// ParallelCountBits split the slice across a workerpool.Pool on lane-aligned
// boundaries.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-highway-algo/hwy/contrib/algo"
//
//	func HasHighBytes(buf []uint8) bool {
//	    return algo.Contains(buf, hwy.CmpGt, uint8(0x7F))
//	}
package algo
