//go:build amd64 && cgo

package simd

import "golang.org/x/sys/cpu"

func init() {
	tierSupported[TierSSE4] = cpu.X86.HasSSE41
	tierNative[TierSSE4] = true
	tierDesc[TierSSE4] = "SSE4.1"

	tierSupported[TierAVX2] = cpu.X86.HasAVX && cpu.X86.HasAVX2
	tierNative[TierAVX2] = true
	tierDesc[TierAVX2] = "AVX2"
}
