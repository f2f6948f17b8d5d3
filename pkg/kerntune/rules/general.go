package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// generalBufferTiers is deliberately more conservative than the baseline
// table: a general-purpose box shares its memory with everything else.
var generalBufferTiers = []bufferTier{
	{
		minMbps: 10000,
		rmemMax: 33554432,
		wmemMax: 33554432,
		tcpRmem: []int64{4096, 131072, 33554432},
		tcpWmem: []int64{4096, 131072, 33554432},
	},
	{
		minMbps: 1000,
		rmemMax: 8388608,
		wmemMax: 8388608,
		tcpRmem: []int64{4096, 87380, 8388608},
		tcpWmem: []int64{4096, 65536, 8388608},
	},
	{
		minMbps: 0,
		rmemMax: 2097152,
		wmemMax: 2097152,
		tcpRmem: []int64{4096, 87380, 2097152},
		tcpWmem: []int64{4096, 65536, 2097152},
	},
}

// generalRules balances latency and throughput for mixed workloads.
func generalRules(f facts.Facts) *param.Map {
	m := param.NewMap()

	if f.FastDisk() {
		m.Set("vm.swappiness", param.Int(10))
		m.Set("vm.dirty_expire_centisecs", param.Int(1500))
	} else {
		m.Set("vm.swappiness", param.Int(20))
		m.Set("vm.dirty_expire_centisecs", param.Int(3000))
	}
	m.Set("vm.dirty_writeback_centisecs", param.Int(500))

	m.Set("net.core.somaxconn", param.Int(clamp(int64(f.Threads)*256, 4096, 65535)))
	m.Set("net.ipv4.tcp_max_syn_backlog", param.Int(clamp(int64(f.Threads)*512, 2048, 65536)))
	applyBufferTiers(m, f.NICMbps, generalBufferTiers)

	m.Set("kernel.sched_autogroup_enabled", param.Int(1))
	m.Set("fs.inotify.max_user_instances", param.Int(1024))

	return m
}
