package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// databaseRules tunes a relational database server. Shared-memory limits
// follow RAM; strict overcommit protects the buffer pool from the OOM
// killer.
//
// Evaluation order matters within this rule set: shmall is derived from
// the already-resolved shmmax, so shmmax must be computed first.
func databaseRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	threads := int64(f.Threads)
	gb := int64(f.RAMGB)

	m.Set("vm.swappiness", param.Int(1))
	m.Set("vm.dirty_ratio", param.Int(15))
	m.Set("vm.dirty_background_ratio", param.Int(1))
	m.Set("vm.overcommit_memory", param.Int(2))
	if f.RAMGB >= 64 {
		m.Set("vm.overcommit_ratio", param.Int(90))
	} else {
		m.Set("vm.overcommit_ratio", param.Int(80))
	}
	m.Set("vm.zone_reclaim_mode", param.Int(0))

	if f.RAMGB >= 16 {
		m.Set("vm.nr_hugepages", param.Int(clamp(gb*128, 512, 65536)))
	} else {
		m.Set("vm.nr_hugepages", param.Int(0))
	}
	// Explicit hugepages replace transparent ones on hosts big enough to
	// size a pool; smaller hosts still benefit from madvise-scoped THP.
	if f.RAMGB >= 32 {
		m.Set("vm.transparent_hugepage", param.Str("never"))
	} else {
		m.Set("vm.transparent_hugepage", param.Str("madvise"))
	}

	// Half of RAM for a single shared segment, and shmall (in pages)
	// derived from it.
	shmmax := gb * 1073741824 / 2
	m.Set("kernel.shmmax", param.Int(shmmax))
	m.Set("kernel.shmall", param.Int(shmmax/4096))
	m.Set("kernel.shmmni", param.Int(4096))
	m.Set("kernel.sem", param.Tuple(250, 32000, 100, 128))

	m.Set("net.core.somaxconn", param.Int(clamp(threads*1024, 8192, 65535)))
	m.Set("net.ipv4.tcp_timestamps", param.Int(1))
	m.Set("fs.aio-max-nr", param.Int(1048576))

	return m
}
