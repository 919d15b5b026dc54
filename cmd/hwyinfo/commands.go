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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viterin/vek/vek32"

	"github.com/ajroetker/go-highway-algo/hwy"
	"github.com/ajroetker/go-highway-algo/hwy/contrib/algo"
)

// levelFlag resolves --level, defaulting to the detected tier.
func levelFlag(cmd *cobra.Command) (hwy.DispatchLevel, error) {
	s, _ := cmd.Flags().GetString("level")
	if s == "" {
		return hwy.CurrentLevel(), nil
	}
	return hwy.ParseDispatchLevel(s)
}

func kindFlag(cmd *cobra.Command) (hwy.Kind, error) {
	s, _ := cmd.Flags().GetString("kind")
	return hwy.ParseKind(s)
}

type tierReport struct {
	Level       hwy.DispatchLevel `yaml:"level"`
	Width       int               `yaml:"width"`
	Features    hwy.CPUFeatures   `yaml:"features"`
	Brand       string            `yaml:"brand,omitempty"`
	CPUFeatures []string          `yaml:"cpu_features,omitempty"`
	Vek         vekReport         `yaml:"vek"`
	NoSimd      bool              `yaml:"no_simd"`
	MaxLevel    string            `yaml:"max_level,omitempty"`
}

type vekReport struct {
	Accelerated bool     `yaml:"accelerated"`
	Features    []string `yaml:"features,omitempty"`
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier",
		Short: "Show the detected dispatch level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := vek32.Info()
			report := tierReport{
				Level:       hwy.CurrentLevel(),
				Width:       hwy.CurrentWidth(),
				Features:    hwy.DetectedFeatures(),
				Brand:       hwy.CPUBrand(),
				CPUFeatures: hwy.CPUFeatureNames(),
				Vek: vekReport{
					Accelerated: info.Acceleration,
					Features:    info.CPUFeatures,
				},
				NoSimd:   hwy.NoSimdEnv(),
				MaxLevel: os.Getenv("HWY_MAX_LEVEL"),
			}
			return render(cmd, report, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintf(tw, "level:\t%s\n", report.Level)
				fmt.Fprintf(tw, "width:\t%d bytes\n", report.Width)
				if report.Brand != "" {
					fmt.Fprintf(tw, "cpu:\t%s\n", report.Brand)
				}
				f := report.Features
				fmt.Fprintf(tw, "sse2:\t%s\n", yesNo(f.HasSSE2))
				fmt.Fprintf(tw, "sse4.1:\t%s\n", yesNo(f.HasSSE41))
				fmt.Fprintf(tw, "avx2:\t%s\n", yesNo(f.HasAVX2))
				fmt.Fprintf(tw, "avx512 f/bw/vl:\t%s/%s/%s\n", yesNo(f.HasAVX512F), yesNo(f.HasAVX512BW), yesNo(f.HasAVX512VL))
				fmt.Fprintf(tw, "asimd:\t%s\n", yesNo(f.HasASIMD))
				fmt.Fprintf(tw, "vek accelerated:\t%s\n", yesNo(report.Vek.Accelerated))
				if report.NoSimd {
					fmt.Fprintf(tw, "HWY_NO_SIMD:\tset\n")
				}
				if report.MaxLevel != "" {
					fmt.Fprintf(tw, "HWY_MAX_LEVEL:\t%s\n", report.MaxLevel)
				}
				if len(report.CPUFeatures) > 0 {
					fmt.Fprintf(tw, "features:\t%s\n", strings.Join(report.CPUFeatures, " "))
				}
				return tw.Flush()
			})
		},
	}
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the comparison rule for each type, operator and level",
		Long: `Print the instruction sequence each comparison resolves to. Without
--level every tier is listed; without --kind every lane type is listed.
Unsupported combinations are shown so callers know to fall back to scalar.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := hwy.AllLevels()
			if s, _ := cmd.Flags().GetString("level"); s != "" {
				l, err := hwy.ParseDispatchLevel(s)
				if err != nil {
					return err
				}
				levels = []hwy.DispatchLevel{l}
			}
			kinds := hwy.AllKinds()
			if s, _ := cmd.Flags().GetString("kind"); s != "" {
				k, err := hwy.ParseKind(s)
				if err != nil {
					return err
				}
				kinds = []hwy.Kind{k}
			}

			var rules []hwy.RuleInfo
			for _, level := range levels {
				for _, k := range kinds {
					for _, op := range hwy.AllCmpOps() {
						rules = append(rules, hwy.DescribeRule(k, op, level))
					}
				}
			}
			return render(cmd, rules, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "LEVEL\tKIND\tOP\tPRIMITIVE\tSWAP\tBIAS\tINVERT")
				for _, r := range rules {
					prim := r.Primitive
					if r.Predicate != "" {
						prim += "(" + r.Predicate + ")"
					}
					if !r.Supported {
						prim = "unsupported"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						r.Level, r.Kind, r.Op.Symbol(), prim, yesNo(r.Swapped), yesNo(r.Biased), yesNo(r.Inverted))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().String("level", "", "Dispatch level (scalar, sse2, sse4.1, neon, avx2, avx512)")
	cmd.Flags().String("kind", "", "Lane type (uint8 ... float64)")
	return cmd
}

type sumTypeReport struct {
	Kind  hwy.Kind `yaml:"kind"`
	Count uint64   `yaml:"count"`
	Sum   hwy.Kind `yaml:"sum"`
	Lanes int      `yaml:"lanes"`
}

func newSumTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sumtype",
		Short: "Show the narrowest overflow-free accumulator for a sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindFlag(cmd)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetUint64("count")
			acc := hwy.SafeSumType(k, count)
			report := sumTypeReport{
				Kind:  k,
				Count: count,
				Sum:   acc,
				Lanes: hwy.CurrentWidth() / acc.Size(),
			}
			return render(cmd, report, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "sum of %d %s values: %s (%d lanes per vector at %s)\n",
					report.Count, report.Kind, report.Sum, report.Lanes, hwy.CurrentLevel())
				return err
			})
		},
	}
	cmd.Flags().String("kind", "uint8", "Element type")
	cmd.Flags().Uint64("count", getEnvUint("HWYINFO_COUNT", 1), "Maximum number of elements summed")
	return cmd
}

type countTypeReport struct {
	Length uint64   `yaml:"length"`
	Count  hwy.Kind `yaml:"count"`
}

func newCountTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counttype",
		Short: "Show the narrowest counter for a slice length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetUint64("length")
			report := countTypeReport{Length: length, Count: hwy.SafeCountType(length)}
			return render(cmd, report, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "count up to %d: %s\n", report.Length, report.Count)
				return err
			})
		},
	}
	cmd.Flags().Uint64("length", getEnvUint("HWYINFO_COUNT", 0), "Maximum slice length")
	return cmd
}

type tailReport struct {
	Kind         hwy.Kind          `yaml:"kind"`
	Op           hwy.CmpOp         `yaml:"op"`
	Level        hwy.DispatchLevel `yaml:"level"`
	Target       string            `yaml:"target"`
	Filler       string            `yaml:"filler"`
	Supported    bool              `yaml:"supported"`
	NeedsMasking bool              `yaml:"needs_masking"`
	Inverted     bool              `yaml:"inverted"`
	Action       hwy.TailAction    `yaml:"action"`
}

type tailInput struct {
	op        hwy.CmpOp
	level     hwy.DispatchLevel
	target    string
	hasTarget bool
	filler    string
}

func planTail[T hwy.Lanes](in tailInput) (tailReport, error) {
	filler, err := parseLane[T](in.filler)
	if err != nil {
		return tailReport{}, err
	}
	target := hwy.Unknown[T]()
	targetName := "unknown"
	if in.hasTarget {
		v, err := parseLane[T](in.target)
		if err != nil {
			return tailReport{}, err
		}
		target = hwy.Known(v)
		targetName = fmt.Sprint(v)
	}
	k := hwy.KindOf[T]()
	return tailReport{
		Kind:         k,
		Op:           in.op,
		Level:        in.level,
		Target:       targetName,
		Filler:       fmt.Sprint(filler),
		Supported:    hwy.Supports(k, in.op, in.level),
		NeedsMasking: hwy.NeedsMasking(in.op, target, filler),
		Inverted:     hwy.InvertsResult(k, in.op, in.level),
		Action:       hwy.PlanTail(in.op, target, filler, in.level),
	}, nil
}

func planTailFor(k hwy.Kind, in tailInput) (tailReport, error) {
	switch k {
	case hwy.KindUint8:
		return planTail[uint8](in)
	case hwy.KindUint16:
		return planTail[uint16](in)
	case hwy.KindUint32:
		return planTail[uint32](in)
	case hwy.KindUint64:
		return planTail[uint64](in)
	case hwy.KindInt8:
		return planTail[int8](in)
	case hwy.KindInt16:
		return planTail[int16](in)
	case hwy.KindInt32:
		return planTail[int32](in)
	case hwy.KindInt64:
		return planTail[int64](in)
	case hwy.KindFloat32:
		return planTail[float32](in)
	default:
		return planTail[float64](in)
	}
}

func newTailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show how a partial final vector is masked",
		Long: `Show whether filler lanes of a partial vector could match the comparison
and, if so, whether the mask must be cleared or set on the selected level.
Omit --target to plan for a comparand that is not known in advance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindFlag(cmd)
			if err != nil {
				return err
			}
			opName, _ := cmd.Flags().GetString("op")
			op, err := hwy.ParseCmpOp(opName)
			if err != nil {
				return err
			}
			level, err := levelFlag(cmd)
			if err != nil {
				return err
			}
			in := tailInput{op: op, level: level, hasTarget: cmd.Flags().Changed("target")}
			in.target, _ = cmd.Flags().GetString("target")
			in.filler, _ = cmd.Flags().GetString("filler")

			report, err := planTailFor(k, in)
			if err != nil {
				return err
			}
			return render(cmd, report, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintf(tw, "compare:\t%s %s %s\n", report.Kind, report.Op.Symbol(), report.Target)
				fmt.Fprintf(tw, "level:\t%s\n", report.Level)
				fmt.Fprintf(tw, "filler:\t%s\n", report.Filler)
				if !report.Supported {
					fmt.Fprintf(tw, "supported:\tno (scalar fallback)\n")
				}
				fmt.Fprintf(tw, "needs masking:\t%s\n", yesNo(report.NeedsMasking))
				fmt.Fprintf(tw, "inverted mask:\t%s\n", yesNo(report.Inverted))
				fmt.Fprintf(tw, "action:\t%s\n", report.Action)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().String("kind", "uint8", "Lane type")
	cmd.Flags().String("op", "==", "Comparison operator (==, !=, >, <, >=, <= or eq, ne, gt, lt, ge, le)")
	cmd.Flags().String("target", "", "Comparand, if known")
	cmd.Flags().String("filler", "0", "Value padding the partial vector")
	cmd.Flags().String("level", "", "Dispatch level (default: detected)")
	return cmd
}

type popCountReport struct {
	Kind  hwy.Kind      `yaml:"kind"`
	Op    hwy.BitwiseOp `yaml:"op"`
	Mask  string        `yaml:"mask"`
	Count int           `yaml:"count"`
	Bits  uint64        `yaml:"bits"`
}

func popCount[T hwy.Integers](op hwy.BitwiseOp, maskArg string, args []string) (popCountReport, error) {
	mask, err := parseLane[T](maskArg)
	if err != nil {
		return popCountReport{}, err
	}
	values, err := parseLanes[T](args)
	if err != nil {
		return popCountReport{}, err
	}
	return popCountReport{
		Kind:  hwy.KindOf[T](),
		Op:    op,
		Mask:  fmt.Sprint(mask),
		Count: len(values),
		Bits:  algo.CountBits(values, mask, op),
	}, nil
}

func popCountFor(k hwy.Kind, op hwy.BitwiseOp, mask string, args []string) (popCountReport, error) {
	switch k {
	case hwy.KindUint8:
		return popCount[uint8](op, mask, args)
	case hwy.KindUint16:
		return popCount[uint16](op, mask, args)
	case hwy.KindUint32:
		return popCount[uint32](op, mask, args)
	case hwy.KindUint64:
		return popCount[uint64](op, mask, args)
	case hwy.KindInt8:
		return popCount[int8](op, mask, args)
	case hwy.KindInt16:
		return popCount[int16](op, mask, args)
	case hwy.KindInt32:
		return popCount[int32](op, mask, args)
	case hwy.KindInt64:
		return popCount[int64](op, mask, args)
	default:
		return popCountReport{}, fmt.Errorf("popcount needs an integer kind, got %s", k)
	}
}

func newPopCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popcount values...",
		Short: "Count set bits after a bitwise operation with a mask",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindFlag(cmd)
			if err != nil {
				return err
			}
			opName, _ := cmd.Flags().GetString("op")
			op, err := hwy.ParseBitwiseOp(opName)
			if err != nil {
				return err
			}
			mask, _ := cmd.Flags().GetString("mask")
			report, err := popCountFor(k, op, mask, args)
			if err != nil {
				return err
			}
			return render(cmd, report, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%d set bits in %d %s values (%s mask %s)\n",
					report.Bits, report.Count, report.Kind, report.Op, report.Mask)
				return err
			})
		},
	}
	cmd.Flags().String("kind", "uint8", "Integer lane type")
	cmd.Flags().String("op", "xor", "Bitwise operation (and, or, xor, andnot, not, nand, nor, xnor, ornot, xornot, none)")
	cmd.Flags().String("mask", "0", "Mask operand")
	return cmd
}
