package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// developmentRules tunes a developer workstation: generous inotify limits
// for IDE file watchers, ptrace and perf opened up for debuggers and
// profilers, and SysRq enabled.
func developmentRules(_ facts.Facts) *param.Map {
	m := param.NewMap()

	m.Set("vm.swappiness", param.Int(10))
	m.Set("vm.max_map_count", param.Int(1048576))
	m.Set("vm.dirty_writeback_centisecs", param.Int(1500))

	m.Set("fs.inotify.max_user_watches", param.Int(1048576))
	m.Set("fs.inotify.max_user_instances", param.Int(1024))

	m.Set("kernel.perf_event_paranoid", param.Int(1))
	m.Set("kernel.kptr_restrict", param.Int(0))
	m.Set("kernel.yama.ptrace_scope", param.Int(0))
	m.Set("kernel.sysrq", param.Int(1))
	m.Set("kernel.core_uses_pid", param.Int(1))

	return m
}
