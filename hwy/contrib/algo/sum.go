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
	"math"
	"strconv"

	"github.com/ajroetker/go-highway-algo/hwy"
	"github.com/viterin/vek"
)

// Total is the result of a sum: the accumulator kind chosen for the input
// length and the accumulator's final bit pattern.
type Total struct {
	Kind hwy.Kind
	Bits uint64
}

// Uint64 returns the total as an unsigned integer. Signed totals are
// sign-extended first, so a negative total converts like uint64(t.Int64()).
func (t Total) Uint64() uint64 {
	switch {
	case t.Kind.IsFloat():
		return uint64(t.Float64())
	case t.Kind.IsSigned():
		return uint64(t.Int64())
	default:
		return t.Bits
	}
}

// Int64 returns the total as a signed integer.
func (t Total) Int64() int64 {
	switch {
	case t.Kind.IsFloat():
		return int64(t.Float64())
	case t.Kind.IsSigned():
		shift := uint(64 - t.Kind.Bits())
		return int64(t.Bits<<shift) >> shift
	default:
		return int64(t.Bits)
	}
}

// Float64 returns the total as a float64.
func (t Total) Float64() float64 {
	switch {
	case t.Kind == hwy.KindFloat64:
		return math.Float64frombits(t.Bits)
	case t.Kind.IsSigned():
		return float64(t.Int64())
	default:
		return float64(t.Bits)
	}
}

func (t Total) String() string {
	switch {
	case t.Kind.IsFloat():
		return strconv.FormatFloat(t.Float64(), 'g', -1, 64)
	case t.Kind.IsSigned():
		return strconv.FormatInt(t.Int64(), 10)
	default:
		return strconv.FormatUint(t.Bits, 10)
	}
}

// Sum adds every element of slice. The accumulator is the narrowest kind
// that cannot overflow for len(slice) elements, chosen once up front.
func Sum[T hwy.Lanes](slice []T) Total {
	acc := hwy.SafeSumTypeOf[T](len(slice))
	return Total{Kind: acc, Bits: BaseSum(slice, acc, hwy.CurrentLevel())}
}

// BaseSum adds slice into an accumulator of kind acc and returns its bit
// pattern. Integer elements are widened into the accumulator lanes of one
// level-wide vector, element i landing in lane i mod lanes, and the lanes
// wrap at the accumulator width the way hardware lanes do. Float elements
// are summed in float64.
func BaseSum[T hwy.Lanes](slice []T, acc hwy.Kind, level hwy.DispatchLevel) uint64 {
	if acc.IsFloat() {
		return math.Float64bits(sumFloat(slice))
	}

	elem := hwy.KindOf[T]()
	lanes := make([]uint64, max(level.Width()/acc.Size(), 1))
	for i, x := range slice {
		j := i % len(lanes)
		lanes[j] = hwy.WrapAdd(acc, lanes[j], hwy.WidenBits(elem, acc, hwy.BitsOf(x)))
	}

	var total uint64
	for _, l := range lanes {
		total = hwy.WrapAdd(acc, total, l)
	}
	return total
}

// sumBlock is the number of elements converted to float64 per vek.Sum call.
const sumBlock = 256

func sumFloat[T hwy.Lanes](slice []T) float64 {
	var buf [sumBlock]float64
	var total float64
	for i := 0; i < len(slice); i += sumBlock {
		block := slice[i:min(i+sumBlock, len(slice))]
		for j, x := range block {
			buf[j] = float64(x)
		}
		total += vek.Sum(buf[:len(block)])
	}
	return total
}
