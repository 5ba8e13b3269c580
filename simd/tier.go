package simd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viterin/vek/vek32"
	"golang.org/x/sys/cpu"
)

// Tier identifies one generation code path.
type Tier int

const (
	TierScalar Tier = iota
	TierSSE4        // narrow tier, 4 lanes
	TierAVX2        // wide tier, 8 lanes
)

// Tiers lists every tier from narrowest to widest.
var Tiers = []Tier{TierScalar, TierSSE4, TierAVX2}

// ErrUnsupportedTier is the panic value (wrapped) when a vector tier is
// invoked on a CPU that cannot execute it.
var ErrUnsupportedTier = errors.New("simd: tier not supported by this CPU")

// tierSupported and tierDesc are overridden by the per-platform init files.
var (
	tierSupported = [...]bool{TierScalar: true, TierSSE4: true, TierAVX2: true}
	tierNative    = [...]bool{TierScalar: false, TierSSE4: false, TierAVX2: false}
	tierDesc      = [...]string{TierScalar: "Go", TierSSE4: "Go lanes x4", TierAVX2: "Go lanes x8"}
)

func (t Tier) String() string {
	switch t {
	case TierScalar:
		return "scalar"
	case TierSSE4:
		return "sse4"
	case TierAVX2:
		return "avx2"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Width returns the number of lanes processed per vector operation.
func (t Tier) Width() int {
	switch t {
	case TierSSE4:
		return 4
	case TierAVX2:
		return 8
	}
	return 1
}

// ParseTier accepts the tier names and the aliases used by the CLI
// (sse, narrow, avx, wide).
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "go", "":
		return TierScalar, nil
	case "sse4", "sse", "sse4.1", "narrow":
		return TierSSE4, nil
	case "avx2", "avx", "wide":
		return TierAVX2, nil
	}
	return TierScalar, fmt.Errorf("unknown tier %q", s)
}

// Supported reports whether t can run on the executing CPU.
func Supported(t Tier) bool {
	if t < TierScalar || t > TierAVX2 {
		return false
	}
	return tierSupported[t]
}

// Native reports whether t runs hand-written vector code rather than the Go lane kernel.
func Native(t Tier) bool {
	if !Supported(t) {
		return false
	}
	return tierNative[t]
}

// Desc returns a description of the implementation behind t (for logging).
func Desc(t Tier) string {
	if t < TierScalar || t > TierAVX2 {
		return "unknown"
	}
	return tierDesc[t]
}

// Best returns the widest supported tier.
func Best() Tier {
	for i := len(Tiers) - 1; i >= 0; i-- {
		if Supported(Tiers[i]) {
			return Tiers[i]
		}
	}
	return TierScalar
}

func mustSupport(t Tier) {
	if !Supported(t) {
		panic(fmt.Errorf("%w: %s", ErrUnsupportedTier, t))
	}
}

// TierInfo describes one tier on the executing machine.
type TierInfo struct {
	Tier           Tier
	Implementation string
	Supported      bool
	Native         bool
}

// RuntimeInfo summarises the tiers and CPU features visible to the process.
type RuntimeInfo struct {
	Tiers []TierInfo
	// Features lists the x86 features relevant to the kernels.
	Features []string
	// VekFeatures and VekAccelerated come from the vek32 runtime used by the Go lane kernel.
	VekFeatures    []string
	VekAccelerated bool
}

// Info returns the capability report.
func Info() RuntimeInfo {
	info := RuntimeInfo{}
	for _, t := range Tiers {
		info.Tiers = append(info.Tiers, TierInfo{
			Tier:           t,
			Implementation: Desc(t),
			Supported:      Supported(t),
			Native:         Native(t),
		})
	}
	flags := []struct {
		name string
		has  bool
	}{
		{"sse2", cpu.X86.HasSSE2},
		{"sse4.1", cpu.X86.HasSSE41},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"avx512f", cpu.X86.HasAVX512F},
	}
	for _, f := range flags {
		if f.has {
			info.Features = append(info.Features, f.name)
		}
	}
	vi := vek32.Info()
	info.VekFeatures = vi.CPUFeatures
	info.VekAccelerated = vi.Acceleration
	return info
}
