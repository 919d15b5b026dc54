package hwy

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unsafe"
)

// DispatchLevel is the capability tier: the SIMD instruction set whose
// comparison primitives the kernels are allowed to use. Levels are ordered
// from scalar-only to the most capable tier.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates the x86-64 baseline: 128-bit vectors with equality
	// and signed greater-than for 8, 16 and 32-bit lanes only.
	DispatchSSE2

	// DispatchSSE41 adds 64-bit lane equality (pcmpeqq) and unsigned 32-bit
	// min/max (pmaxud, pminud). There is still no 64-bit greater-than.
	DispatchSSE41

	// DispatchNEON indicates ARM NEON (128-bit) with signed and unsigned
	// greater-than and greater-or-equal for every lane width.
	DispatchNEON

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD) with signed
	// greater-than for every lane width, including 64-bit.
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 F/BW/VL (512-bit SIMD) whose compares
	// take a predicate and produce a mask for every width and signedness.
	DispatchAVX512

	numLevels
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchSSE41:
		return "sse4.1"
	case DispatchNEON:
		return "neon"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DispatchLevel) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Width returns the vector register width in bytes for the level.
// Scalar mode uses 16-byte vectors for consistency with the narrow tiers.
func (d DispatchLevel) Width() int {
	switch d {
	case DispatchAVX2:
		return 32
	case DispatchAVX512:
		return 64
	default:
		return 16
	}
}

// AllLevels lists every dispatch level from scalar to the widest tier.
func AllLevels() []DispatchLevel {
	levels := make([]DispatchLevel, numLevels)
	for i := range levels {
		levels[i] = DispatchLevel(i)
	}
	return levels
}

// ParseDispatchLevel returns the level named by s, as printed by String.
func ParseDispatchLevel(s string) (DispatchLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "sse4", "sse41", "sse4_1":
		return DispatchSSE41, nil
	case "none", "generic":
		return DispatchScalar, nil
	}
	for _, l := range AllLevels() {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("hwy: unknown dispatch level %q", s)
}

// CPUFeatures is the feature-flag set the platform layer reports once at
// process start. Only the flags that change comparison capabilities are kept.
type CPUFeatures struct {
	HasSSE2     bool
	HasSSE41    bool
	HasAVX2     bool
	HasAVX512F  bool
	HasAVX512BW bool // 8 and 16-bit lane compares into mask registers
	HasAVX512VL bool
	HasASIMD    bool
}

// LevelFor returns the most capable level supported by f.
func LevelFor(f CPUFeatures) DispatchLevel {
	switch {
	case f.HasAVX512F && f.HasAVX512BW && f.HasAVX512VL:
		return DispatchAVX512
	case f.HasAVX2:
		return DispatchAVX2
	case f.HasSSE41:
		return DispatchSSE41
	case f.HasSSE2:
		return DispatchSSE2
	case f.HasASIMD:
		return DispatchNEON
	default:
		return DispatchScalar
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files and never changed afterwards.
var currentLevel DispatchLevel

// currentFeatures is the raw flag set the level was derived from.
var currentFeatures CPUFeatures

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentLevel.Width()
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentLevel.String()
}

// DetectedFeatures returns the feature flags reported at startup.
func DetectedFeatures() CPUFeatures {
	return currentFeatures
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, Highway will use scalar fallback regardless of CPU capabilities.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLevelEnv returns the cap requested through HWY_MAX_LEVEL, if any.
// An unparsable value is ignored.
func MaxLevelEnv() (DispatchLevel, bool) {
	val := os.Getenv("HWY_MAX_LEVEL")
	if val == "" {
		return 0, false
	}
	l, err := ParseDispatchLevel(val)
	if err != nil {
		return 0, false
	}
	return l, true
}

// setLevel applies the environment overrides to the detected level.
// Called exactly once from the per-architecture init.
func setLevel(f CPUFeatures) {
	currentFeatures = f
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		return
	}
	currentLevel = LevelFor(f)
	if capLevel, ok := MaxLevelEnv(); ok && capLevel < currentLevel {
		currentLevel = capLevel
	}
}

// LanesFor returns the number of lanes of type T in one vector at level.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//   - int32: 32/4 = 8 lanes
func LanesFor[T Lanes](level DispatchLevel) int {
	var dummy T
	return level.Width() / int(unsafe.Sizeof(dummy))
}

// MaxLanes returns the maximum number of lanes for type T with the current SIMD width.
func MaxLanes[T Lanes]() int {
	return LanesFor[T](currentLevel)
}
