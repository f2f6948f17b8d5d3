package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// cacheRules tunes an in-memory cache host. THP is switched off outright
// (fork-heavy snapshotting suffers badly from it) and accept queues are
// sized for bursty client reconnects.
func cacheRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	threads := int64(f.Threads)
	gb := int64(f.RAMGB)

	m.Set("vm.swappiness", param.Int(1))
	m.Set("vm.overcommit_memory", param.Int(1))
	m.Set("vm.transparent_hugepage", param.Str("never"))
	m.Set("vm.dirty_ratio", param.Int(10))
	m.Set("vm.dirty_background_ratio", param.Int(3))
	m.Set("vm.min_free_kbytes", param.Int(clamp(gb*8192, 65536, 4194304)))

	m.Set("net.core.somaxconn", param.Int(clamp(threads*4096, 16384, 262144)))
	m.Set("net.ipv4.tcp_max_syn_backlog", param.Int(clamp(threads*2048, 8192, 131072)))
	m.Set("net.ipv4.tcp_fin_timeout", param.Int(10))
	m.Set("net.ipv4.tcp_keepalive_time", param.Int(120))

	m.Set("fs.file-max", param.Int(clamp(gb*65536, 1048576, 4194304)))

	return m
}
