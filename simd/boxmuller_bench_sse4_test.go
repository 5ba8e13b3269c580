//go:build amd64 && cgo

package simd

import (
	"runtime"
	"testing"

	"golang.org/x/sys/cpu"

	"github.com/ic-timon/nd-rng/uniform"
)

func BenchmarkFill_SSE4(b *testing.B) {
	if runtime.GOARCH != "amd64" || !cpu.X86.HasSSE41 {
		b.Skip("SSE4.1 not available")
	}
	dst := make([]float32, benchCount)
	lanes := uniform.NewSeeder(42).Lanes4()
	src := uniform.NewLCG(42)
	b.SetBytes(benchCount * 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FillSSE4(dst, &lanes, src, 5, 4)
	}
}
