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
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-highway-algo/hwy"
	"github.com/ajroetker/go-highway-algo/hwy/contrib/workerpool"
)

// The parallel variants split slice into ranges whose boundaries are
// multiples of the vector lane count, so only the range holding the end of
// slice ever sees a partial vector. A nil pool runs on the calling goroutine.

// vectorsPerBatch is the number of vectors a worker grabs at a time in the
// early-exit searches.
const vectorsPerBatch = 64

// ParallelContains is Contains split across pool.
func ParallelContains[T hwy.Lanes](pool *workerpool.Pool, slice []T, op hwy.CmpOp, target T) bool {
	p := prepare(op, target)
	var found atomic.Bool
	pool.ParallelForAtomicBatched(len(slice), p.lanes*vectorsPerBatch, func(start, end int) {
		if found.Load() {
			return
		}
		if BaseIndexOf(slice[start:end], p) >= 0 {
			found.Store(true)
		}
	})
	return found.Load()
}

// ParallelIndexOf is IndexOf split across pool. Batches are handed out in
// increasing order and a batch starting past the best match so far is
// skipped.
func ParallelIndexOf[T hwy.Lanes](pool *workerpool.Pool, slice []T, op hwy.CmpOp, target T) int {
	p := prepare(op, target)
	var best atomic.Int64
	best.Store(int64(len(slice)))
	pool.ParallelForAtomicBatched(len(slice), p.lanes*vectorsPerBatch, func(start, end int) {
		if int64(start) >= best.Load() {
			return
		}
		idx := BaseIndexOf(slice[start:end], p)
		if idx < 0 {
			return
		}
		for pos := int64(start + idx); ; {
			cur := best.Load()
			if pos >= cur || best.CompareAndSwap(cur, pos) {
				return
			}
		}
	})
	if idx := int(best.Load()); idx < len(slice) {
		return idx
	}
	return -1
}

// ParallelCount is Count split across pool.
func ParallelCount[T hwy.Lanes](pool *workerpool.Pool, slice []T, op hwy.CmpOp, target T) int {
	p := prepare(op, target)
	var count atomic.Int64
	pool.ParallelForAligned(len(slice), p.lanes, func(start, end int) {
		count.Add(int64(BaseCount(slice[start:end], p)))
	})
	return int(count.Load())
}

// ParallelSum is Sum split across pool. The accumulator kind is chosen from
// the full length, so every partial sum and their merge use the same width.
func ParallelSum[T hwy.Lanes](pool *workerpool.Pool, slice []T) Total {
	level := hwy.CurrentLevel()
	acc := hwy.SafeSumTypeOf[T](len(slice))

	var mu sync.Mutex
	// Zero bits are also float64 +0.
	var total uint64
	pool.ParallelForAligned(len(slice), hwy.LanesFor[T](level), func(start, end int) {
		part := BaseSum(slice[start:end], acc, level)
		mu.Lock()
		defer mu.Unlock()
		total = hwy.WrapAdd(acc, total, part)
	})
	return Total{Kind: acc, Bits: total}
}

// ParallelCountBits is CountBits split across pool.
func ParallelCountBits[T hwy.Integers](pool *workerpool.Pool, slice []T, mask T, op hwy.BitwiseOp) uint64 {
	level := hwy.CurrentLevel()
	var total atomic.Uint64
	pool.ParallelForAligned(len(slice), hwy.LanesFor[T](level), func(start, end int) {
		total.Add(BaseCountBits(slice[start:end], mask, op, level))
	})
	return total.Load()
}
