package hwy

import (
	"math"
	"testing"
)

func TestSafeSumType(t *testing.T) {
	tests := []struct {
		elem  Kind
		count uint64
		want  Kind
	}{
		{KindUint8, 0, KindUint16},
		{KindUint8, 257, KindUint16},
		{KindUint8, 258, KindUint32},
		{KindUint8, 1_000_000, KindUint32},
		{KindUint8, 16_843_009, KindUint32},
		{KindUint8, 16_843_010, KindUint64},
		{KindUint16, 65_537, KindUint32},
		{KindUint16, 65_538, KindUint64},
		{KindUint32, 1, KindUint64},
		{KindUint64, 1, KindUint64},
		{KindInt8, 256, KindInt16},
		{KindInt8, 257, KindInt32},
		{KindInt8, 16_777_216, KindInt32},
		{KindInt8, 16_777_217, KindInt64},
		{KindInt16, 65_536, KindInt32},
		{KindInt16, 65_537, KindInt64},
		{KindInt32, 1, KindInt64},
		{KindInt64, math.MaxUint64, KindInt64},
		{KindFloat32, 10, KindFloat64},
		{KindFloat64, 10, KindFloat64},
	}
	for _, tt := range tests {
		if got := SafeSumType(tt.elem, tt.count); got != tt.want {
			t.Errorf("SafeSumType(%s, %d) = %s, want %s", tt.elem, tt.count, got, tt.want)
		}
	}
	if got := SafeSumTypeOf[int16](-5); got != KindInt32 {
		t.Errorf("SafeSumTypeOf[int16](-5) = %s, want int32", got)
	}
}

// wrapSum adds count copies of the element bit pattern v in an accumulator
// of kind acc, with the wrap-around of that lane width, and returns the
// result as a signed or unsigned integer.
func wrapSum(elem, acc Kind, v uint64, count uint64) int64 {
	x := WidenBits(elem, acc, v)
	var sum uint64
	for range count {
		sum = WrapAdd(acc, sum, x)
	}
	if acc.IsSigned() {
		shift := uint(64 - acc.Bits())
		return int64(sum<<shift) >> shift
	}
	return int64(sum)
}

func TestSafeSumTypeNeverOverflows(t *testing.T) {
	type extreme struct {
		elem  Kind
		bits  uint64
		value int64
	}
	extremes := []extreme{
		{KindUint8, math.MaxUint8, math.MaxUint8},
		{KindUint16, math.MaxUint16, math.MaxUint16},
		{KindInt8, 0x80, math.MinInt8},
		{KindInt8, 0x7F, math.MaxInt8},
		{KindInt16, 0x8000, math.MinInt16},
		{KindInt16, 0x7FFF, math.MaxInt16},
	}
	counts := []uint64{1, 255, 256, 257, 258, 65_535, 65_536, 65_537, 65_538, 100_000}
	for _, e := range extremes {
		for _, count := range counts {
			acc := SafeSumType(e.elem, count)
			want := e.value * int64(count)
			if got := wrapSum(e.elem, acc, e.bits, count); got != want {
				t.Errorf("%d x %s(%d) in %s = %d, want %d", count, e.elem, e.value, acc, got, want)
			}
		}
	}

	// 32-bit elements only get 64 bits, which holds any realistic count.
	if got := wrapSum(KindUint32, SafeSumType(KindUint32, 1000), math.MaxUint32, 1000); got != 1000*math.MaxUint32 {
		t.Errorf("uint32 sum = %d", got)
	}
	if got := wrapSum(KindInt32, SafeSumType(KindInt32, 1000), 0x80000000, 1000); got != 1000*math.MinInt32 {
		t.Errorf("int32 sum = %d", got)
	}
}

func TestSafeSumTypeIsNarrowest(t *testing.T) {
	// One element past each boundary overflows the narrower accumulator.
	if got := wrapSum(KindUint8, KindUint16, math.MaxUint8, 258); got == 258*math.MaxUint8 {
		t.Error("258 x 255 fit in uint16; the uint8 boundary is too tight")
	}
	if got := wrapSum(KindInt8, KindInt16, 0x80, 257); got == 257*math.MinInt8 {
		t.Error("257 x -128 fit in int16; the int8 boundary is too tight")
	}
	if got := wrapSum(KindInt16, KindInt32, 0x8000, 65_537); got == 65_537*math.MinInt16 {
		t.Error("65537 x -32768 fit in int32; the int16 boundary is too tight")
	}
}

func TestScenarioMillionMaxBytes(t *testing.T) {
	const n = 1_000_000
	acc := SafeSumTypeOf[uint8](n)
	if acc.Bits() < 32 {
		t.Fatalf("SafeSumTypeOf[uint8](%d) = %s, want 32 bits or wider", n, acc)
	}
	if got := wrapSum(KindUint8, acc, 255, n); got != 255_000_000 {
		t.Errorf("sum = %d, want 255000000", got)
	}
	if got := wrapSum(KindUint8, KindUint16, 255, n); got == 255_000_000 {
		t.Error("a 16-bit accumulator must wrap")
	}
}

func TestSafeCountType(t *testing.T) {
	tests := []struct {
		max  uint64
		want Kind
	}{
		{0, KindUint8},
		{255, KindUint8},
		{256, KindUint16},
		{65_535, KindUint16},
		{65_536, KindUint32},
		{math.MaxUint32, KindUint32},
		{math.MaxUint32 + 1, KindUint64},
		{math.MaxUint64, KindUint64},
	}
	for _, tt := range tests {
		if got := SafeCountType(tt.max); got != tt.want {
			t.Errorf("SafeCountType(%d) = %s, want %s", tt.max, got, tt.want)
		}
	}
}

func TestWrapAdd(t *testing.T) {
	if got := WrapAdd(KindUint8, 200, 100); got != 44 {
		t.Errorf("uint8 200+100 = %d, want 44", got)
	}
	if got := WrapAdd(KindInt16, 0x7FFF, 1); got != 0x8000 {
		t.Errorf("int16 max+1 = %#x, want 0x8000", got)
	}
	f := WrapAdd(KindFloat64, math.Float64bits(1.5), math.Float64bits(2.25))
	if math.Float64frombits(f) != 3.75 {
		t.Errorf("float64 1.5+2.25 = %v", math.Float64frombits(f))
	}
	f = WrapAdd(KindFloat32, uint64(math.Float32bits(math.MaxFloat32)), uint64(math.Float32bits(math.MaxFloat32)))
	if !math.IsInf(float64(math.Float32frombits(uint32(f))), 1) {
		t.Error("float32 overflow must saturate to +Inf")
	}
}

func TestWidenBits(t *testing.T) {
	tests := []struct {
		name      string
		elem, acc Kind
		in, want  uint64
	}{
		{"u8 to u16", KindUint8, KindUint16, 0xFF, 0xFF},
		{"i8 -1 to i32", KindInt8, KindInt32, 0xFF, 0xFFFFFFFF},
		{"i8 5 to i16", KindInt8, KindInt16, 0x05, 0x05},
		{"i16 min to i64", KindInt16, KindInt64, 0x8000, 0xFFFFFFFFFFFF8000},
		{"f32 to f64", KindFloat32, KindFloat64, uint64(math.Float32bits(-2.5)), math.Float64bits(-2.5)},
		{"f64 to f64", KindFloat64, KindFloat64, math.Float64bits(7), math.Float64bits(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WidenBits(tt.elem, tt.acc, tt.in); got != tt.want {
				t.Errorf("got %#x, want %#x", got, tt.want)
			}
		})
	}
}
