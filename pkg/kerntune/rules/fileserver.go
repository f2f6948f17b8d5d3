package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// fileserverRules tunes an NFS/SMB host: hold dentries and inodes hard in
// cache, keep generous descriptor limits, and let spinning disks flush
// earlier than flash.
func fileserverRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	threads := int64(f.Threads)
	gb := int64(f.RAMGB)

	m.Set("vm.swappiness", param.Int(10))
	m.Set("vm.vfs_cache_pressure", param.Int(10))
	if f.Disk == facts.HDD {
		m.Set("vm.dirty_ratio", param.Int(10))
		m.Set("vm.dirty_background_ratio", param.Int(3))
	} else {
		m.Set("vm.dirty_ratio", param.Int(20))
		m.Set("vm.dirty_background_ratio", param.Int(5))
	}
	m.Set("vm.min_free_kbytes", param.Int(clamp(gb*6144, 65536, 2097152)))

	m.Set("fs.file-max", param.Int(clamp(gb*262144, 2097152, 16777216)))
	m.Set("fs.nr_open", param.Int(4194304))
	m.Set("fs.inotify.max_user_watches", param.Int(clamp(gb*65536, 524288, 8388608)))

	m.Set("net.core.somaxconn", param.Int(clamp(threads*512, 4096, 65535)))
	m.Set("net.ipv4.tcp_window_scaling", param.Int(1))
	m.Set("sunrpc.tcp_slot_table_entries", param.Int(128))

	return m
}
