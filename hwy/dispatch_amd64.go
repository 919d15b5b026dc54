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

//go:build amd64

package hwy

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

func init() {
	setLevel(detectCPUFeatures())
}

func detectCPUFeatures() CPUFeatures {
	f := CPUFeatures{
		HasSSE2:  cpu.X86.HasSSE2,
		HasSSE41: cpu.X86.HasSSE41,
		HasAVX2:  cpu.X86.HasAVX2,
	}

	// x/sys/cpu reports the AVX-512 subsets only when the OS saves the
	// opmask and upper ZMM state; cpuid is consulted as a second opinion so a
	// hypervisor that hides one subset does not select the wide tier.
	if cpu.X86.HasAVX512F {
		f.HasAVX512F = cpuid.CPU.Supports(cpuid.AVX512F)
		f.HasAVX512BW = cpu.X86.HasAVX512BW && cpuid.CPU.Supports(cpuid.AVX512BW)
		f.HasAVX512VL = cpu.X86.HasAVX512VL && cpuid.CPU.Supports(cpuid.AVX512VL)
	}
	return f
}

// CPUBrand returns the processor brand string.
func CPUBrand() string {
	return cpuid.CPU.BrandName
}

// CPUFeatureNames lists every feature the processor reports.
func CPUFeatureNames() []string {
	return cpuid.CPU.FeatureSet()
}
