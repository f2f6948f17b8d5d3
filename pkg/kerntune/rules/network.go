package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// networkBufferTiers is the most aggressive buffer table in the rule set;
// a router or load balancer exists to move packets.
var networkBufferTiers = []bufferTier{
	{
		minMbps: 10000,
		rmemMax: 134217728,
		wmemMax: 134217728,
		tcpRmem: []int64{4096, 87380, 134217728},
		tcpWmem: []int64{4096, 65536, 134217728},
	},
	{
		minMbps: 1000,
		rmemMax: 33554432,
		wmemMax: 33554432,
		tcpRmem: []int64{4096, 87380, 33554432},
		tcpWmem: []int64{4096, 65536, 33554432},
	},
	{
		minMbps: 0,
		rmemMax: 8388608,
		wmemMax: 8388608,
		tcpRmem: []int64{4096, 87380, 8388608},
		tcpWmem: []int64{4096, 65536, 8388608},
	},
}

// networkBacklogTiers sizes the receive backlog for forwarding hosts.
var networkBacklogTiers = []tierRow{
	{threshold: 10000, value: 250000},
	{threshold: 1000, value: 50000},
	{threshold: 0, value: 10000},
}

// networkRules tunes routers, firewalls, and load balancers: forwarding
// on, conntrack sized for RAM, and big softirq budgets on fast links.
func networkRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	threads := int64(f.Threads)
	gb := int64(f.RAMGB)

	m.Set("net.ipv4.ip_forward", param.Int(1))
	m.Set("net.ipv4.conf.all.rp_filter", param.Int(2))
	m.Set("net.netfilter.nf_conntrack_max", param.Int(clamp(gb*65536, 262144, 4194304)))
	m.Set("net.netfilter.nf_conntrack_tcp_timeout_established", param.Int(7200))

	m.Set("net.core.netdev_max_backlog", param.Int(pickTier(f.NICMbps, networkBacklogTiers)))
	if f.NICMbps >= 10000 {
		m.Set("net.core.netdev_budget", param.Int(600))
		m.Set("net.core.netdev_budget_usecs", param.Int(8000))
	} else {
		m.Set("net.core.netdev_budget", param.Int(300))
		m.Set("net.core.netdev_budget_usecs", param.Int(2000))
	}
	applyBufferTiers(m, f.NICMbps, networkBufferTiers)

	m.Set("net.core.somaxconn", param.Int(clamp(threads*4096, 32768, 262144)))
	m.Set("net.ipv4.tcp_max_syn_backlog", param.Int(clamp(threads*8192, 16384, 524288)))

	m.Set("net.ipv4.neigh.default.gc_thresh1", param.Int(4096))
	m.Set("net.ipv4.neigh.default.gc_thresh2", param.Int(16384))
	m.Set("net.ipv4.neigh.default.gc_thresh3", param.Int(32768))

	return m
}
