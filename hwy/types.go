// Package hwy provides the lane-level kernels behind vectorized array
// algorithms: a per-type, per-operator comparison dispatch table over the
// available SIMD tiers, the tail-masking policy for partial final vectors,
// the overflow-safe accumulator selector for reductions, and the fused
// bitwise-then-popcount operator table.
//
// The capability tier is detected once at startup. Kernels take the tier as
// an argument so that a single logical operation always runs on one tier:
//
//	import "github.com/ajroetker/go-highway-algo/hwy"
//
//	level := hwy.CurrentLevel()
//	lanes := hwy.LanesFor[uint8](level)
//	target := hwy.SetN(lanes, uint8(100))
//
//	v := hwy.LoadN(data, lanes)
//	m := hwy.Compare(v, target, hwy.CmpGt, level)
//	if m.AnyTrue() {
//	    // ...
//	}
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle. It wraps the lane values of one vector
// register; the comparison kernels reinterpret them as raw lane bits.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// BitsOf returns the raw bit pattern of a lane value, zero-extended to 64
// bits. Float lanes yield their IEEE-754 encoding.
func BitsOf[T Lanes](v T) uint64 {
	return toBits(v)
}

// FromBits reinterprets the low bits of u as a lane value of type T.
func FromBits[T Lanes](u uint64) T {
	return fromBits[T](u)
}
