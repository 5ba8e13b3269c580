// Package metrics 提供运行时指标采集与报告输出
package metrics

import (
	"runtime"
	"runtime/debug"
	"time"
)

// Snapshot 运行时指标快照
type Snapshot struct {
	TS         time.Time
	HeapAlloc  uint64
	HeapSys    uint64
	TotalAlloc uint64 // 累计分配字节，单调递增，不受 GC 影响
	Mallocs    uint64
	NumGC      uint32
}

// Take 采集当前运行时指标
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:         time.Now(),
		HeapAlloc:  m.HeapAlloc,
		HeapSys:    m.HeapSys,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
	}
}

// GC 触发 GC 并释放回 OS，使两次快照之间只包含被测代码的分配
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// Delta 两次快照之间的差值
type Delta struct {
	Elapsed      time.Duration
	AllocBytes   uint64
	Mallocs      uint64
	GCCount      uint32
	AllocRateBps float64
}

// Diff 计算两次快照间的分配量、分配速率（bytes/s）和 GC 次数差
func Diff(before, after Snapshot) Delta {
	d := Delta{Elapsed: after.TS.Sub(before.TS)}
	if after.TotalAlloc >= before.TotalAlloc {
		d.AllocBytes = after.TotalAlloc - before.TotalAlloc
	}
	if after.Mallocs >= before.Mallocs {
		d.Mallocs = after.Mallocs - before.Mallocs
	}
	if after.NumGC >= before.NumGC {
		d.GCCount = after.NumGC - before.NumGC
	}
	if s := d.Elapsed.Seconds(); s > 0 {
		d.AllocRateBps = float64(d.AllocBytes) / s
	}
	return d
}
