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

// hwyinfo reports how the comparison kernel runs on this machine: the
// detected dispatch level, the rule each (type, operator, level) uses, the
// partial-vector masking plan, and the reduction accumulator choices.
//
// Usage:
//
//	hwyinfo tier
//	hwyinfo table --level sse2 --kind uint64
//	hwyinfo tail --kind uint32 --op ">=" --filler 0 --level sse4.1
//	hwyinfo sumtype --kind uint8 --count 1000000
//	hwyinfo popcount --kind uint8 --op xor --mask 0x0f 0xaa 0x55
//	hwyinfo --format yaml tier
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("hwyinfo: ")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hwyinfo",
		Short: "Inspect SIMD comparison dispatch",
		Long: `hwyinfo prints the SIMD dispatch level detected on this machine and the
instruction sequence used for every lane comparison, along with the
partial-vector masking and accumulator-width decisions built on top of it.

Environment:
  HWY_NO_SIMD      force the scalar tier
  HWY_MAX_LEVEL    cap the detected tier (sse2, sse4.1, neon, avx2, avx512)
  HWYINFO_FORMAT   default output format (text or yaml)`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case formatText, formatYAML:
				return nil
			}
			return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatYAML)
		},
	}
	rootCmd.PersistentFlags().String("format", getEnvStr("HWYINFO_FORMAT", formatText), "Output format: text, yaml")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hwyinfo v%s\n", version)
		},
	})

	rootCmd.AddCommand(
		newTierCmd(),
		newTableCmd(),
		newSumTypeCmd(),
		newCountTypeCmd(),
		newTailCmd(),
		newPopCountCmd(),
	)
	return rootCmd
}

// getEnvStr returns environment variable value or default
func getEnvStr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint returns environment variable as uint64 or default
func getEnvUint(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if u, err := strconv.ParseUint(strings.TrimSpace(val), 0, 64); err == nil {
			return u
		}
	}
	return defaultVal
}
