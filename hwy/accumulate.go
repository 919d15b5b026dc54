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

// SafeSumType returns the narrowest accumulator kind that cannot overflow
// when summing at most maxCount elements of kind elem. The narrower the
// accumulator, the more lanes each reduction vector holds.
//
// Unsigned elements of width W start at 2W and widen while
// maxCount > max(acc)/max(elem). Signed elements use the same progression
// with min(acc)/min(elem): the most negative sum is the binding bound.
// 32 and 64-bit integers go straight to 64 bits, with no headroom beyond it.
// Floats accumulate in float64, which saturates to Inf instead of wrapping.
func SafeSumType(elem Kind, maxCount uint64) Kind {
	switch elem {
	case KindUint8:
		return widenUnsigned(elem, maxCount, KindUint16, KindUint32, KindUint64)
	case KindUint16:
		return widenUnsigned(elem, maxCount, KindUint32, KindUint64)
	case KindUint32, KindUint64:
		return KindUint64
	case KindInt8:
		return widenSigned(elem, maxCount, KindInt16, KindInt32, KindInt64)
	case KindInt16:
		return widenSigned(elem, maxCount, KindInt32, KindInt64)
	case KindInt32, KindInt64:
		return KindInt64
	default:
		return KindFloat64
	}
}

// SafeSumTypeOf is SafeSumType for the element type T.
func SafeSumTypeOf[T Lanes](maxCount int) Kind {
	return SafeSumType(KindOf[T](), uint64(max(maxCount, 0)))
}

func widenUnsigned(elem Kind, maxCount uint64, steps ...Kind) Kind {
	for _, acc := range steps[:len(steps)-1] {
		if maxCount <= acc.MaxUnsigned()/elem.MaxUnsigned() {
			return acc
		}
	}
	return steps[len(steps)-1]
}

func widenSigned(elem Kind, maxCount uint64, steps ...Kind) Kind {
	for _, acc := range steps[:len(steps)-1] {
		// Both minima are negative, so the quotient is the element count
		// at which the most negative sum still fits.
		if maxCount <= uint64(acc.MinSigned()/elem.MinSigned()) {
			return acc
		}
	}
	return steps[len(steps)-1]
}

// SafeCountType returns the narrowest unsigned kind able to hold any count
// in [0, maxLength].
func SafeCountType(maxLength uint64) Kind {
	switch {
	case maxLength <= math.MaxUint8:
		return KindUint8
	case maxLength <= math.MaxUint16:
		return KindUint16
	case maxLength <= math.MaxUint32:
		return KindUint32
	default:
		return KindUint64
	}
}

// WrapAdd adds two lane values of kind acc with the wrap-around of a lane of
// that width. Integer accumulators are stored as bit patterns; float64
// accumulators as math.Float64bits.
func WrapAdd(acc Kind, a, b uint64) uint64 {
	switch acc {
	case KindFloat32:
		return uint64(math.Float32bits(math.Float32frombits(uint32(a)) + math.Float32frombits(uint32(b))))
	case KindFloat64:
		return math.Float64bits(math.Float64frombits(a) + math.Float64frombits(b))
	default:
		return (a + b) & acc.LaneOnes()
	}
}

// WidenBits converts a raw element bit pattern of kind elem into the bit
// pattern of the same value in accumulator kind acc (zero or sign extension,
// or float conversion).
func WidenBits(elem, acc Kind, bits uint64) uint64 {
	switch {
	case elem == KindFloat32 && acc == KindFloat64:
		return math.Float64bits(float64(math.Float32frombits(uint32(bits))))
	case elem.IsFloat():
		return bits
	case elem.IsSigned():
		shift := uint(64 - elem.Bits())
		return uint64(int64(bits<<shift)>>shift) & acc.LaneOnes()
	default:
		return bits & acc.LaneOnes()
	}
}
