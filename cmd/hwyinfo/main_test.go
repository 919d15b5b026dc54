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

package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-highway-algo/hwy"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func runYAML(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := run(t, append([]string{"--format", "yaml"}, args...)...)
	require.NoError(t, err, out)
	require.NoError(t, yaml.Unmarshal([]byte(out), v), out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hwyinfo v"+version+"\n", out)
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, "--format", "json", "counttype", "--length", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestTier(t *testing.T) {
	out, err := run(t, "tier")
	require.NoError(t, err)
	assert.Contains(t, out, "level:")
	assert.Contains(t, out, hwy.CurrentLevel().String())

	var report map[string]any
	runYAML(t, &report, "tier")
	assert.Equal(t, hwy.CurrentLevel().String(), report["level"])
	assert.Equal(t, hwy.CurrentWidth(), report["width"])
	assert.Contains(t, report, "vek")
}

func TestTableUnsupportedOnSSE2(t *testing.T) {
	var rules []map[string]any
	runYAML(t, &rules, "table", "--level", "sse2", "--kind", "uint64")
	require.Len(t, rules, len(hwy.AllCmpOps()))

	supported := map[string]bool{}
	for _, r := range rules {
		assert.Equal(t, "sse2", r["level"])
		assert.Equal(t, "uint64", r["kind"])
		supported[r["op"].(string)] = r["supported"].(bool)
	}
	assert.True(t, supported["EqualTo"])
	assert.True(t, supported["NotEqualTo"])
	assert.False(t, supported["GreaterThan"])
	assert.False(t, supported["LessThanOrEqualTo"])

	out, err := run(t, "table", "--level", "sse2", "--kind", "u64")
	require.NoError(t, err)
	assert.Contains(t, out, "unsupported")
	assert.Contains(t, out, "cmpeq32x2")
}

func TestTableAllLevels(t *testing.T) {
	var rules []map[string]any
	runYAML(t, &rules, "table", "--kind", "float32")
	assert.Len(t, rules, len(hwy.AllLevels())*len(hwy.AllCmpOps()))

	_, err := run(t, "table", "--level", "mmx")
	assert.Error(t, err)
}

func TestTailCarveOut(t *testing.T) {
	want := map[string]string{
		"sse2":   "set",
		"sse4.1": "clear",
		"avx2":   "set",
		"neon":   "clear",
		"avx512": "clear",
		"scalar": "clear",
	}
	for level, action := range want {
		var report map[string]any
		runYAML(t, &report, "tail", "--kind", "uint32", "--op", ">=", "--filler", "0", "--level", level)
		assert.Equal(t, action, report["action"], level)
		assert.Equal(t, true, report["needs_masking"], level)
		assert.Equal(t, "unknown", report["target"], level)
	}
}

func TestTailKnownTarget(t *testing.T) {
	var report map[string]any
	runYAML(t, &report, "tail", "--kind", "int8", "--op", "gt", "--target", "5", "--filler", "0", "--level", "avx2")
	assert.Equal(t, "keep", report["action"])
	assert.Equal(t, false, report["needs_masking"])

	runYAML(t, &report, "tail", "--kind", "float64", "--op", "lt", "--filler", "+Inf", "--level", "sse2")
	assert.Equal(t, "keep", report["action"])

	out, err := run(t, "tail", "--kind", "uint64", "--op", ">", "--target", "1", "--filler", "7", "--level", "sse2")
	require.NoError(t, err)
	assert.Contains(t, out, "scalar fallback")

	_, err = run(t, "tail", "--kind", "uint8", "--filler", "256")
	assert.Error(t, err)
	_, err = run(t, "tail", "--kind", "uint8", "--op", "~=")
	assert.Error(t, err)
}

func TestSumType(t *testing.T) {
	var report map[string]any
	runYAML(t, &report, "sumtype", "--kind", "uint8", "--count", "1000000")
	assert.Equal(t, "uint32", report["sum"])

	runYAML(t, &report, "sumtype", "--kind", "int8", "--count", "256")
	assert.Equal(t, "int16", report["sum"])

	out, err := run(t, "sumtype", "--kind", "float32", "--count", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "float64")
}

func TestCountType(t *testing.T) {
	for length, want := range map[string]string{
		"255":        "uint8",
		"256":        "uint16",
		"65535":      "uint16",
		"4294967295": "uint32",
		"4294967296": "uint64",
	} {
		var report map[string]any
		runYAML(t, &report, "counttype", "--length", length)
		assert.Equal(t, want, report["count"], length)
	}
}

func TestPopCount(t *testing.T) {
	// 0xaa^0x0f = 0xa5, 0x55^0x0f = 0x5a: four bits each.
	out, err := run(t, "popcount", "--kind", "uint8", "--op", "xor", "--mask", "0x0f", "0xaa", "0x55")
	require.NoError(t, err)
	assert.Equal(t, "8 set bits in 2 uint8 values (XOR mask 15)\n", out)

	var report map[string]any
	runYAML(t, &report, "popcount", "--kind", "int16", "--op", "not", "0", "0", "0")
	assert.Equal(t, 48, report["bits"])
	assert.Equal(t, "NOT", report["op"])

	runYAML(t, &report, "popcount", "--kind", "uint8", "--op", "xornot", "--mask", "0xff", "0")
	assert.Equal(t, "XNOR", report["op"])
	assert.Equal(t, 0, report["bits"])

	_, err = run(t, "popcount", "--kind", "float32", "1")
	assert.Error(t, err)
	_, err = run(t, "popcount", "--kind", "uint8")
	assert.Error(t, err)
}

func TestParseLane(t *testing.T) {
	i8, err := parseLane[int8]("-128")
	require.NoError(t, err)
	assert.Equal(t, int8(math.MinInt8), i8)

	u16, err := parseLane[uint16]("0xffff")
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), u16)

	_, err = parseLane[uint8]("256")
	assert.Error(t, err)
	_, err = parseLane[int32]("1.5")
	assert.Error(t, err)

	f, err := parseLane[float32]("NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(f)))

	vals, err := parseLanes[int64]([]string{"1", "-2", "0x10"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, -2, 16}, vals)
}
