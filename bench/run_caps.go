// 运行环境能力报告
package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"

	"github.com/ic-timon/nd-rng/bench/metrics"
	"github.com/ic-timon/nd-rng/simd"
)

func newCapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print the CPU and the generator tiers available on it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := collectCaps()
			printCaps(c)
			if path, _ := cmd.Flags().GetString("json"); path != "" {
				if err := metrics.WriteJSON(c, path); err != nil {
					return err
				}
				fmt.Printf("已写入 %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().String("json", "", "also write the report as JSON to this path")
	return cmd
}

type caps struct {
	Brand         string
	Vendor        string
	PhysicalCores int
	LogicalCores  int
	GOARCH        string
	CPUIDFeatures []string // as reported by cpuid, cross-checks x/sys/cpu
	Runtime       simd.RuntimeInfo
	Best          string
}

func collectCaps() caps {
	c := caps{
		Brand:         cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		GOARCH:        runtime.GOARCH,
		Runtime:       simd.Info(),
		Best:          simd.Best().String(),
	}
	if cpuid.CPU.Supports(cpuid.SSE4) {
		c.CPUIDFeatures = append(c.CPUIDFeatures, "sse4.1")
	}
	if cpuid.CPU.Supports(cpuid.AVX, cpuid.AVX2) {
		c.CPUIDFeatures = append(c.CPUIDFeatures, "avx2")
	}
	return c
}

func printCaps(c caps) {
	fmt.Printf("cpu:      %s (%s), %d cores / %d threads, %s\n", c.Brand, c.Vendor, c.PhysicalCores, c.LogicalCores, c.GOARCH)
	fmt.Printf("features: %s\n", strings.Join(c.Runtime.Features, " "))
	fmt.Printf("cpuid:    %s\n", strings.Join(c.CPUIDFeatures, " "))
	fmt.Printf("vek32:    accelerated=%v %s\n", c.Runtime.VekAccelerated, strings.Join(c.Runtime.VekFeatures, " "))
	for _, t := range c.Runtime.Tiers {
		fmt.Printf("  %-7s supported=%-5v native=%-5v %s\n", t.Tier, t.Supported, t.Native, t.Implementation)
	}
	fmt.Printf("best:     %s\n", c.Best)
}
