package hwy

import (
	"math"
	"testing"
)

func TestNeedsMasking(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		got    bool
		expect bool
	}{
		{"u8 gt 0 known 0", NeedsMasking(CmpGt, Known[uint8](0), 0), false},
		{"u8 gt 0 unknown", NeedsMasking(CmpGt, Unknown[uint8](), 0), false},
		{"u8 ge 0 unknown", NeedsMasking(CmpGe, Unknown[uint8](), 0), true},
		{"u8 lt known 5 filler 0", NeedsMasking(CmpLt, Known[uint8](5), 0), true},
		{"u8 lt unknown filler max", NeedsMasking(CmpLt, Unknown[uint8](), 255), false},
		{"u8 eq known 0 filler 0", NeedsMasking(CmpEq, Known[uint8](0), 0), true},
		{"u8 eq known 7 filler 0", NeedsMasking(CmpEq, Known[uint8](7), 0), false},
		{"u8 ne known 0 filler 0", NeedsMasking(CmpNe, Known[uint8](0), 0), false},
		{"u8 ne unknown", NeedsMasking(CmpNe, Unknown[uint8](), 0), true},
		{"i8 gt unknown filler min", NeedsMasking(CmpGt, Unknown[int8](), math.MinInt8), false},
		{"i8 gt unknown filler 0", NeedsMasking(CmpGt, Unknown[int8](), 0), true},
		{"i8 gt known -5 filler 0", NeedsMasking(CmpGt, Known[int8](-5), 0), true},
		{"i8 gt known 5 filler 0", NeedsMasking(CmpGt, Known[int8](5), 0), false},
		{"i32 lt unknown filler max", NeedsMasking(CmpLt, Unknown[int32](), math.MaxInt32), false},
		{"u64 gt unknown filler 0", NeedsMasking(CmpGt, Unknown[uint64](), 0), false},
		{"f64 gt unknown filler -inf", NeedsMasking(CmpGt, Unknown[float64](), math.Inf(-1)), false},
		{"f64 lt unknown filler +inf", NeedsMasking(CmpLt, Unknown[float64](), math.Inf(1)), false},
		{"f64 ge unknown filler -inf", NeedsMasking(CmpGe, Unknown[float64](), math.Inf(-1)), true},
		{"f64 ge unknown filler nan", NeedsMasking(CmpGe, Unknown[float64](), nan), false},
		{"f64 eq unknown filler nan", NeedsMasking(CmpEq, Unknown[float64](), nan), false},
		{"f64 ne unknown filler nan", NeedsMasking(CmpNe, Unknown[float64](), nan), true},
		{"f64 ne known nan filler nan", NeedsMasking(CmpNe, Known(nan), nan), true},
		{"f64 ne known 5 filler 0", NeedsMasking(CmpNe, Known(5.0), 0), true},
		{"f64 ne known 0 filler 0", NeedsMasking(CmpNe, Known(0.0), 0), false},
		{"f32 gt known 1 filler 0", NeedsMasking(CmpGt, Known[float32](1), 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expect {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestPlanTailFollowsPolarity(t *testing.T) {
	// Unsigned 32-bit >= with an unknown target and a zero filler: the filler
	// can match, so every tier masks, but the direction depends on whether
	// the tier's rule is inverted.
	want := map[DispatchLevel]TailAction{
		DispatchScalar: TailClear,
		DispatchSSE2:   TailSet,
		DispatchSSE41:  TailClear,
		DispatchNEON:   TailClear,
		DispatchAVX2:   TailSet,
		DispatchAVX512: TailClear,
	}
	for level, action := range want {
		if got := PlanTail(CmpGe, Unknown[uint32](), 0, level); got != action {
			t.Errorf("%s: PlanTail(uint32 >=) = %s, want %s", level, got, action)
		}
	}

	for _, level := range AllLevels() {
		if got := PlanTail(CmpGt, Unknown[uint32](), 0, level); got != TailKeep {
			t.Errorf("%s: PlanTail(uint32 > , filler 0) = %s, want keep", level, got)
		}
	}
	if got := PlanTail(CmpNe, Unknown[int16](), 0, DispatchAVX2); got != TailSet {
		t.Errorf("PlanTail(int16 != on avx2) = %s, want set", got)
	}
	if got := PlanTail(CmpNe, Unknown[int16](), 0, DispatchAVX512); got != TailClear {
		t.Errorf("PlanTail(int16 != on avx512) = %s, want clear", got)
	}
}

// countPadded counts data lanes satisfying "x op target" by loading every
// chunk into a full vector padded with filler. When planned is set the last
// chunk's mask goes through PlanTail/ApplyTail, with the target exposed to
// the plan only if known; otherwise the mask is used raw.
func countPadded[T Lanes](level DispatchLevel, data []T, op CmpOp, target T, known bool, filler T, planned bool) int {
	operand := Unknown[T]()
	if known {
		operand = Known(target)
	}
	lanes := LanesFor[T](level)
	bv := SetN(lanes, target)
	count := 0
	for off := 0; off < len(data); off += lanes {
		valid := min(lanes, len(data)-off)
		m := Compare(LoadPadded(data[off:], lanes, filler), bv, op, level)
		if valid < lanes && planned {
			m = m.ApplyTail(PlanTail(op, operand, filler, level), valid)
		}
		count += m.CountTrue()
	}
	return count
}

func testMaskingPolicy[T Lanes](t *testing.T) {
	t.Helper()
	specials := specialValues[T]()
	// 37 elements leave a partial last vector at every width.
	data := make([]T, 37)
	for i := range data {
		data[i] = specials[i%len(specials)]
	}
	k := KindOf[T]()

	for _, level := range AllLevels() {
		for _, op := range AllCmpOps() {
			if !Supports(k, op, level) {
				continue
			}
			for _, target := range specials {
				want := 0
				for _, x := range data {
					if CompareScalar(x, target, op) {
						want++
					}
				}
				for _, filler := range specials {
					if got := countPadded(level, data, op, target, true, filler, true); got != want {
						t.Fatalf("%s %s %s: target %v filler %v known: got %d, want %d", k, level, op, target, filler, got, want)
					}
					if got := countPadded(level, data, op, target, false, filler, true); got != want {
						t.Fatalf("%s %s %s: target %v filler %v unknown (plan %s): got %d, want %d",
							k, level, op, target, filler, PlanTail(op, Unknown[T](), filler, level), got, want)
					}
					// The known-target decision is exact: skipping a mask
					// it asked for must over-count.
					needs := NeedsMasking(op, Known(target), filler)
					raw := countPadded(level, data, op, target, true, filler, false)
					if needs == (raw == want) {
						t.Fatalf("%s %s %s: target %v filler %v: NeedsMasking=%v but unmasked count %d vs %d",
							k, level, op, target, filler, needs, raw, want)
					}
				}
			}
		}
	}
}

func TestMaskingPolicy(t *testing.T) {
	t.Run("uint8", testMaskingPolicy[uint8])
	t.Run("int8", testMaskingPolicy[int8])
	t.Run("uint16", testMaskingPolicy[uint16])
	t.Run("int16", testMaskingPolicy[int16])
	t.Run("uint32", testMaskingPolicy[uint32])
	t.Run("int32", testMaskingPolicy[int32])
	t.Run("uint64", testMaskingPolicy[uint64])
	t.Run("int64", testMaskingPolicy[int64])
	t.Run("float32", testMaskingPolicy[float32])
	t.Run("float64", testMaskingPolicy[float64])
}

func TestScenarioTailCarveOut(t *testing.T) {
	// Five uint32 lanes >= 3 with a zero filler, on a tier with four lanes
	// per vector: the second vector holds one value and three filler lanes.
	data := []uint32{1, 2, 3, 4, 5}
	if PlanTail(CmpGe, Unknown[uint32](), 0, DispatchSSE2) != TailSet || PlanTail(CmpGe, Unknown[uint32](), 0, DispatchSSE41) != TailClear {
		t.Fatal("unexpected tail plans for uint32 >=")
	}
	for _, level := range []DispatchLevel{DispatchSSE2, DispatchSSE41} {
		got := countPadded(level, data, CmpGe, 3, false, 0, true)
		if got != 3 {
			t.Errorf("%s: got %d, want 3", level, got)
		}
	}
	if got := countPadded(DispatchSSE2, data, CmpGe, 0, true, 0, false); got != 8 {
		t.Errorf("unmasked x >= 0 over padded lanes = %d, want 8", got)
	}
}

func TestApplyTailPolarityMismatchPanics(t *testing.T) {
	m := Compare(LoadN([]uint8{1, 2}, 2), LoadN([]uint8{1, 3}, 2), CmpEq, DispatchSSE2)
	defer func() {
		if recover() == nil {
			t.Error("ApplyTail(set) on a direct mask did not panic")
		}
	}()
	m.ApplyTail(TailSet, 1)
}

func TestTailActionString(t *testing.T) {
	for a, want := range map[TailAction]string{TailKeep: "keep", TailClear: "clear", TailSet: "set", TailAction(9): "unknown"} {
		if a.String() != want {
			t.Errorf("%d.String() = %q, want %q", a, a.String(), want)
		}
	}
}
