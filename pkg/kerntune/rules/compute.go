package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// computeRules tunes CPU-bound batch and HPC workloads: NUMA-local
// reclaim on large multi-socket boxes, long scheduler granularity, and
// relaxed dirty thresholds so checkpoint writes stream instead of
// stalling.
func computeRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	cores := int64(f.Cores)
	gb := int64(f.RAMGB)

	m.Set("vm.swappiness", param.Int(1))

	// Local reclaim only pays off on boxes big enough to have real NUMA
	// distance; everywhere else it just fragments the page cache.
	if f.RAMGB >= 64 && f.Cores >= 16 {
		m.Set("vm.zone_reclaim_mode", param.Int(1))
	} else {
		m.Set("vm.zone_reclaim_mode", param.Int(0))
	}

	if f.RAMGB >= 64 {
		m.Set("vm.transparent_hugepage", param.Str("always"))
	} else {
		m.Set("vm.transparent_hugepage", param.Str("madvise"))
	}
	if f.RAMGB >= 32 {
		m.Set("vm.nr_hugepages", param.Int(clamp(gb*192, 1024, 131072)))
	} else {
		m.Set("vm.nr_hugepages", param.Int(0))
	}

	m.Set("vm.dirty_ratio", param.Int(40))
	m.Set("vm.dirty_background_ratio", param.Int(10))
	if f.Cores >= 32 {
		m.Set("vm.stat_interval", param.Int(10))
	} else {
		m.Set("vm.stat_interval", param.Int(1))
	}

	m.Set("kernel.numa_balancing", param.Int(0))
	m.Set("kernel.sched_min_granularity_ns", param.Int(clamp(cores*750000, 1500000, 24000000)))
	m.Set("kernel.sched_wakeup_granularity_ns", param.Int(clamp(cores*1000000, 2000000, 30000000)))
	m.Set("kernel.sched_migration_cost_ns", param.Int(500000))

	return m
}
