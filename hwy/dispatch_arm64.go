//go:build arm64

package hwy

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

func init() {
	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	setLevel(CPUFeatures{HasASIMD: cpu.ARM64.HasASIMD})
}

// CPUBrand returns the processor brand string.
func CPUBrand() string {
	return cpuid.CPU.BrandName
}

// CPUFeatureNames lists every feature the processor reports.
func CPUFeatureNames() []string {
	return cpuid.CPU.FeatureSet()
}
