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

// IsSorted reports whether slice is in non-decreasing order, i.e. no element
// is greater than its successor. NaN never compares greater, so it does not
// break the order.
func IsSorted[T hwy.Lanes](slice []T) bool {
	return BaseIsSorted(slice, hwy.CurrentLevel())
}

// BaseIsSorted compares two loads offset by one element, so each vector
// checks lanes adjacent pairs.
func BaseIsSorted[T hwy.Lanes](slice []T, level hwy.DispatchLevel) bool {
	pairs := len(slice) - 1
	if pairs < 1 {
		return true
	}
	if !hwy.Supports(hwy.KindOf[T](), hwy.CmpGt, level) {
		level = hwy.DispatchScalar
	}
	lanes := hwy.LanesFor[T](level)

	// Both loads are padded with the same filler and filler > filler never
	// holds, so the plan is always to keep the mask.
	var filler T
	tail := hwy.PlanTail(hwy.CmpGt, hwy.Known(filler), filler, level)

	for i := 0; i < pairs; i += lanes {
		valid := min(lanes, pairs-i)
		a := hwy.LoadPadded(slice[i:i+valid], lanes, filler)
		b := hwy.LoadPadded(slice[i+1:i+1+valid], lanes, filler)
		m := hwy.Compare(a, b, hwy.CmpGt, level)
		if valid < lanes {
			m = m.ApplyTail(tail, valid)
		}
		if m.AnyTrue() {
			return false
		}
	}
	return true
}
