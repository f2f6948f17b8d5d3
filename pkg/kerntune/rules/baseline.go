package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// baselineBufferTiers sizes socket buffers from raw link speed. 10 GbE and
// faster links get a 64 MiB ceiling, gigabit 16 MiB, anything slower 4 MiB.
var baselineBufferTiers = []bufferTier{
	{
		minMbps: 10000,
		rmemMax: 67108864,
		wmemMax: 67108864,
		tcpRmem: []int64{4096, 87380, 67108864},
		tcpWmem: []int64{4096, 65536, 67108864},
	},
	{
		minMbps: 1000,
		rmemMax: 16777216,
		wmemMax: 16777216,
		tcpRmem: []int64{4096, 87380, 16777216},
		tcpWmem: []int64{4096, 65536, 16777216},
	},
	{
		minMbps: 0,
		rmemMax: 4194304,
		wmemMax: 4194304,
		tcpRmem: []int64{4096, 87380, 4194304},
		tcpWmem: []int64{4096, 65536, 4194304},
	},
}

// baselineBacklogTiers sizes the per-CPU receive backlog from link speed.
var baselineBacklogTiers = []tierRow{
	{threshold: 10000, value: 30000},
	{threshold: 1000, value: 5000},
	{threshold: 0, value: 1000},
}

// Baseline computes the profile-independent parameter set from hardware
// facts. Every run starts from this map; profile and IPv6 overrides are
// layered on top of it.
func Baseline(f facts.Facts) *param.Map {
	m := param.NewMap()

	// Memory management.
	if f.FastDisk() {
		m.Set("vm.swappiness", param.Int(5))
	} else {
		m.Set("vm.swappiness", param.Int(10))
	}
	if f.RAMGB >= 16 {
		m.Set("vm.dirty_ratio", param.Int(5))
		m.Set("vm.dirty_background_ratio", param.Int(2))
	} else {
		m.Set("vm.dirty_ratio", param.Int(10))
		m.Set("vm.dirty_background_ratio", param.Int(5))
	}
	m.Set("vm.min_free_kbytes", param.Int(int64(f.RAMGB)*4096))
	m.Set("vm.vfs_cache_pressure", param.Int(100))

	// Network buffers scale with link speed.
	applyBufferTiers(m, f.NICMbps, baselineBufferTiers)
	m.Set("net.core.netdev_max_backlog", param.Int(pickTier(f.NICMbps, baselineBacklogTiers)))

	// Connection handling. somaxconn is left unclamped here; profiles that
	// care clamp their own override.
	m.Set("net.core.somaxconn", param.Int(int64(f.Threads)*1024))
	m.Set("net.core.default_qdisc", param.Str("fq"))
	m.Set("net.ipv4.tcp_congestion_control", param.Str("bbr"))
	m.Set("net.ipv4.tcp_fastopen", param.Int(3))
	m.Set("net.ipv4.tcp_mtu_probing", param.Int(1))
	m.Set("net.ipv4.tcp_slow_start_after_idle", param.Int(0))
	m.Set("net.ipv4.tcp_tw_reuse", param.Int(1))
	m.Set("net.ipv4.ip_local_port_range", param.Tuple(1024, 65535))
	m.Set("net.ipv4.tcp_syncookies", param.Int(1))

	// Kernel-global limits cannot be set from inside a container namespace.
	if !f.Container {
		m.Set("fs.file-max", param.Int(2097152))
		m.Set("fs.inotify.max_user_watches", param.Int(524288))
		m.Set("kernel.pid_max", param.Int(4194304))
		m.Set("kernel.panic", param.Int(10))
	}

	return m
}
