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
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-highway-algo/hwy"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// render writes v as YAML when --format=yaml and otherwise hands the output
// stream to text.
func render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	if format != formatYAML {
		return text(out)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// parseLane parses s as one lane of T. Integers accept any base prefix
// strconv understands; floats accept NaN and Inf spellings.
func parseLane[T hwy.Lanes](s string) (T, error) {
	var zero T
	k := hwy.KindOf[T]()
	switch {
	case k.IsFloat():
		f, err := strconv.ParseFloat(s, k.Bits())
		if err != nil {
			return zero, fmt.Errorf("parse %s value %q: %w", k, s, err)
		}
		return T(f), nil
	case k.IsSigned():
		i, err := strconv.ParseInt(s, 0, k.Bits())
		if err != nil {
			return zero, fmt.Errorf("parse %s value %q: %w", k, s, err)
		}
		return T(i), nil
	default:
		u, err := strconv.ParseUint(s, 0, k.Bits())
		if err != nil {
			return zero, fmt.Errorf("parse %s value %q: %w", k, s, err)
		}
		return T(u), nil
	}
}

func parseLanes[T hwy.Lanes](args []string) ([]T, error) {
	out := make([]T, len(args))
	for i, s := range args {
		v, err := parseLane[T](s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
