//go:build !amd64 && !arm64

package hwy

func init() {
	// Non-amd64/arm64 architectures only get the scalar tier.
	setLevel(CPUFeatures{})
}

// CPUBrand returns the processor brand string.
func CPUBrand() string {
	return ""
}

// CPUFeatureNames lists every feature the processor reports.
func CPUFeatureNames() []string {
	return nil
}
