// Package gen 提供压测用的参考正态分布样本
package gen

import (
	"math"
	"math/rand/v2"
)

// Reference 基于 math/rand/v2 (PCG) 的参考正态生成器，作为精度与耗时对照
type Reference struct {
	rng    *rand.Rand
	mean   float64
	stdDev float64
}

// NewReference 创建 N(mean, variance) 参考生成器，seed 固定时结果可复现
func NewReference(mean, variance float64, seed uint64) *Reference {
	return &Reference{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		mean:   mean,
		stdDev: math.Sqrt(variance),
	}
}

// Fill 写满 dst
func (r *Reference) Fill(dst []float32) {
	for i := range dst {
		dst[i] = float32(r.rng.NormFloat64()*r.stdDev + r.mean)
	}
}

// Floats 生成 n 个样本
func (r *Reference) Floats(n int) []float32 {
	out := make([]float32, n)
	r.Fill(out)
	return out
}
