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
	"math"
	"unsafe"
)

// This file models the comparison instructions of each tier as operations on
// a register of raw lane bits. Every primitive reproduces the semantics of the
// instruction it is named after, including its limitations (signed-only
// greater-than, missing 64-bit lanes), so the dispatch table in compare.go
// has to compensate for them exactly as it would on hardware.

// register holds the contents of one vector register: each lane's bit
// pattern, zero-extended to 64 bits.
type register struct {
	kind  Kind
	lanes []uint64
}

func newRegister(kind Kind, n int) register {
	return register{kind: kind, lanes: make([]uint64, n)}
}

// toBits reinterprets a lane value as its raw bit pattern.
func toBits[T Lanes](v T) uint64 {
	switch unsafe.Sizeof(v) {
	case 1:
		return uint64(*(*uint8)(unsafe.Pointer(&v)))
	case 2:
		return uint64(*(*uint16)(unsafe.Pointer(&v)))
	case 4:
		return uint64(*(*uint32)(unsafe.Pointer(&v)))
	default:
		return *(*uint64)(unsafe.Pointer(&v))
	}
}

// fromBits reinterprets the low bits of u as a lane value.
func fromBits[T Lanes](u uint64) T {
	var v T
	switch unsafe.Sizeof(v) {
	case 1:
		*(*uint8)(unsafe.Pointer(&v)) = uint8(u)
	case 2:
		*(*uint16)(unsafe.Pointer(&v)) = uint16(u)
	case 4:
		*(*uint32)(unsafe.Pointer(&v)) = uint32(u)
	default:
		*(*uint64)(unsafe.Pointer(&v)) = u
	}
	return v
}

func registerOf[T Lanes](v Vec[T]) register {
	r := newRegister(KindOf[T](), len(v.data))
	for i, x := range v.data {
		r.lanes[i] = toBits(x)
	}
	return r
}

// signedLane sign-extends lane i to 64 bits.
func (r register) signedLane(i int) int64 {
	shift := uint(64 - r.kind.Bits())
	return int64(r.lanes[i]<<shift) >> shift
}

// floatLane interprets lane i of a float register.
func (r register) floatLane(i int) float64 {
	if r.kind == KindFloat32 {
		return float64(math.Float32frombits(uint32(r.lanes[i])))
	}
	return math.Float64frombits(r.lanes[i])
}

func (r register) boolLane(i int, b bool) {
	if b {
		r.lanes[i] = r.kind.LaneOnes()
	} else {
		r.lanes[i] = 0
	}
}

func lanePairs(a, b register) (register, int) {
	n := min(len(a.lanes), len(b.lanes))
	return newRegister(a.kind, n), n
}

// pcmpeq compares lanes for bitwise equality (pcmpeqb/w/d/q, vpcmpeq, cmeq).
func pcmpeq(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.boolLane(i, a.lanes[i] == b.lanes[i])
	}
	return r
}

// pcmpgt is the signed greater-than that SSE2/AVX2 provide (pcmpgtb/w/d/q).
// There is no unsigned form on those tiers.
func pcmpgt(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.boolLane(i, a.signedLane(i) > b.signedLane(i))
	}
	return r
}

// pcmpgtu is a native unsigned greater-than (AVX-512 vpcmpu, NEON cmhi).
func pcmpgtu(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.boolLane(i, a.lanes[i] > b.lanes[i])
	}
	return r
}

// pcmpge is a native signed greater-or-equal (AVX-512 vpcmp NLT, NEON cmge).
func pcmpge(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.boolLane(i, a.signedLane(i) >= b.signedLane(i))
	}
	return r
}

// pcmpgeu is a native unsigned greater-or-equal (AVX-512 vpcmpu NLT, NEON cmhs).
func pcmpgeu(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.boolLane(i, a.lanes[i] >= b.lanes[i])
	}
	return r
}

// pcmpne is the AVX-512 not-equal predicate.
func pcmpne(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.boolLane(i, a.lanes[i] != b.lanes[i])
	}
	return r
}

func pxor(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.lanes[i] = a.lanes[i] ^ b.lanes[i]
	}
	return r
}

func pand(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.lanes[i] = a.lanes[i] & b.lanes[i]
	}
	return r
}

func por(a, b register) register {
	r, n := lanePairs(a, b)
	for i := range n {
		r.lanes[i] = a.lanes[i] | b.lanes[i]
	}
	return r
}

// broadcast fills every lane with bits.
func broadcast(kind Kind, bits uint64, n int) register {
	r := newRegister(kind, n)
	for i := range r.lanes {
		r.lanes[i] = bits & kind.LaneOnes()
	}
	return r
}

// biasSign flips the sign bit of every lane so that a signed compare orders
// the lanes as unsigned values.
func biasSign(a register) register {
	return pxor(a, broadcast(a.kind, a.kind.SignBit(), len(a.lanes)))
}

// split32 reinterprets a 64-bit register as twice as many 32-bit lanes,
// low half first.
func split32(a register) register {
	r := newRegister(KindUint32, 2*len(a.lanes))
	for i, x := range a.lanes {
		r.lanes[2*i] = x & math.MaxUint32
		r.lanes[2*i+1] = x >> 32
	}
	return r
}

// pshufdDup builds 64-bit lanes by duplicating the low (odd=false) or high
// (odd=true) 32-bit half of each pair, like pshufd with 0xA0 or 0xF5.
func pshufdDup(a register, kind Kind, odd bool) register {
	r := newRegister(kind, len(a.lanes)/2)
	for i := range r.lanes {
		x := a.lanes[2*i]
		if odd {
			x = a.lanes[2*i+1]
		}
		r.lanes[i] = x<<32 | x
	}
	return r
}

// pcmpeq64Pairs is the SSE2 emulation of a 64-bit lane equality: pcmpeqd on
// 32-bit halves, then AND each half with its swapped partner (pshufd 0xB1).
func pcmpeq64Pairs(a, b register) register {
	eq := pcmpeq(split32(a), split32(b))
	lo := pshufdDup(eq, a.kind, false)
	hi := pshufdDup(eq, a.kind, true)
	return pand(lo, hi)
}

// pcmpgt64Split derives a 64-bit greater-than on tiers that have 64-bit
// equality but no 64-bit greater-than (SSE4.1):
//
//	gt = gt32(hi) | (eq64(hi) & gtu32(lo))
//
// The low halves are always ordered as unsigned. The high halves are ordered
// as signed, or as unsigned when unsignedHigh is set.
func pcmpgt64Split(a, b register, unsignedHigh bool) register {
	n := min(len(a.lanes), len(b.lanes))
	bias := newRegister(KindUint32, 2*n)
	for i := range n {
		bias.lanes[2*i] = 1 << 31
		if unsignedHigh {
			bias.lanes[2*i+1] = 1 << 31
		}
	}
	ah, bh := split32(a), split32(b)
	ah.kind, bh.kind = KindInt32, KindInt32
	gt := pcmpgt(pxor(ah, bias), pxor(bh, bias))

	hiMask := broadcast(a.kind, 0xFFFFFFFF00000000, n)
	eqHi := pcmpeq(pand(a, hiMask), pand(b, hiMask))

	gtHi := pshufdDup(gt, a.kind, true)
	gtLo := pshufdDup(gt, a.kind, false)
	return por(gtHi, pand(eqHi, gtLo))
}

// pmaxudEq computes unsigned a >= b for 32-bit lanes as max(a, b) == a
// (SSE4.1 pmaxud followed by pcmpeqd).
func pmaxudEq(a, b register) register {
	r, n := lanePairs(a, b)
	mx := newRegister(a.kind, n)
	for i := range n {
		mx.lanes[i] = max(a.lanes[i], b.lanes[i])
	}
	eq := pcmpeq(mx, a)
	copy(r.lanes, eq.lanes)
	return r
}

// floatPredicate is a cmpps/cmppd/vcmp predicate: the set of relations
// (less, equal, greater, unordered) for which the lane is true.
type floatPredicate struct {
	name                      string
	lt, eq, gt, unorderedTrue bool
}

var (
	predEQOQ  = floatPredicate{name: "EQ_OQ", eq: true}
	predNEQUQ = floatPredicate{name: "NEQ_UQ", lt: true, gt: true, unorderedTrue: true}
	predLTOQ  = floatPredicate{name: "LT_OQ", lt: true}
	predLEOQ  = floatPredicate{name: "LE_OQ", lt: true, eq: true}
	predGTOQ  = floatPredicate{name: "GT_OQ", gt: true}
	predGEOQ  = floatPredicate{name: "GE_OQ", gt: true, eq: true}
)

// cmpf evaluates a float predicate lane by lane. A NaN in either operand
// makes the pair unordered.
func cmpf(a, b register, p floatPredicate) register {
	r, n := lanePairs(a, b)
	for i := range n {
		x, y := a.floatLane(i), b.floatLane(i)
		var res bool
		switch {
		case math.IsNaN(x) || math.IsNaN(y):
			res = p.unorderedTrue
		case x < y:
			res = p.lt
		case x > y:
			res = p.gt
		default:
			res = p.eq
		}
		r.boolLane(i, res)
	}
	return r
}
