package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// webRules tunes an HTTP/application server: large accept queues, fast
// TIME_WAIT turnover, and file-descriptor headroom for many concurrent
// short-lived connections.
func webRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	threads := int64(f.Threads)
	gb := int64(f.RAMGB)

	m.Set("vm.swappiness", param.Int(10))
	m.Set("vm.overcommit_memory", param.Int(1))

	m.Set("net.core.somaxconn", param.Int(clamp(threads*2048, 16384, 262144)))
	m.Set("net.ipv4.tcp_max_syn_backlog", param.Int(clamp(threads*4096, 8192, 262144)))
	m.Set("net.ipv4.tcp_fin_timeout", param.Int(15))
	m.Set("net.ipv4.tcp_keepalive_time", param.Int(300))
	m.Set("net.ipv4.tcp_keepalive_intvl", param.Int(30))
	m.Set("net.ipv4.tcp_keepalive_probes", param.Int(5))
	m.Set("net.ipv4.tcp_max_tw_buckets", param.Int(clamp(gb*32768, 262144, 2097152)))
	m.Set("net.netfilter.nf_conntrack_max", param.Int(clamp(gb*16384, 65536, 1048576)))

	m.Set("fs.file-max", param.Int(clamp(gb*131072, 1048576, 8388608)))
	m.Set("fs.nr_open", param.Int(2097152))

	return m
}
