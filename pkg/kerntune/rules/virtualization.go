package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// virtualizationBacklogTiers sizes the receive backlog for a hypervisor
// host bridging guest traffic.
var virtualizationBacklogTiers = []tierRow{
	{threshold: 10000, value: 250000},
	{threshold: 1000, value: 30000},
	{threshold: 0, value: 5000},
}

// virtualizationRules tunes a KVM/QEMU hypervisor host. Guest memory is
// backed by hugepages on larger hosts and bridge traffic bypasses
// iptables.
func virtualizationRules(f facts.Facts) *param.Map {
	m := param.NewMap()

	m.Set("vm.swappiness", param.Int(5))
	m.Set("vm.overcommit_memory", param.Int(1))
	m.Set("vm.dirty_ratio", param.Int(10))
	m.Set("vm.dirty_background_ratio", param.Int(3))

	// Hugepage pool only pays off once there is guest memory worth backing.
	if f.RAMGB >= 16 {
		m.Set("vm.nr_hugepages", param.Int(clamp(int64(f.RAMGB)*64, 512, 32768)))
	} else {
		m.Set("vm.nr_hugepages", param.Int(0))
	}

	if f.Cores >= 16 {
		m.Set("kernel.numa_balancing", param.Int(1))
	} else {
		m.Set("kernel.numa_balancing", param.Int(0))
	}
	m.Set("kernel.sched_migration_cost_ns", param.Int(5000000))

	m.Set("fs.aio-max-nr", param.Int(clamp(int64(f.RAMGB)*65536, 1048576, 16777216)))

	m.Set("net.ipv4.ip_forward", param.Int(1))
	m.Set("net.ipv4.conf.all.rp_filter", param.Int(2))
	m.Set("net.bridge.bridge-nf-call-iptables", param.Int(0))
	m.Set("net.core.netdev_max_backlog", param.Int(pickTier(f.NICMbps, virtualizationBacklogTiers)))

	return m
}
