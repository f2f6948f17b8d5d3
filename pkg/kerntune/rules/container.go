package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// containerRules tunes a container orchestration host: PID and mapping
// headroom for hundreds of namespaces, inotify capacity for the watch
// storms kubelets cause, and bridge traffic routed through iptables.
func containerRules(f facts.Facts) *param.Map {
	m := param.NewMap()
	cores := int64(f.Cores)
	threads := int64(f.Threads)
	gb := int64(f.RAMGB)

	m.Set("vm.overcommit_memory", param.Int(1))
	m.Set("vm.max_map_count", param.Int(clamp(gb*16384, 262144, 2097152)))

	m.Set("fs.inotify.max_user_watches", param.Int(clamp(gb*32768, 524288, 4194304)))
	m.Set("fs.inotify.max_user_instances", param.Int(clamp(cores*512, 2048, 16384)))
	m.Set("fs.file-max", param.Int(clamp(gb*131072, 1048576, 8388608)))

	m.Set("kernel.pid_max", param.Int(clamp(threads*65536, 131072, 4194304)))
	m.Set("kernel.threads-max", param.Int(clamp(gb*16384, 262144, 4194304)))

	m.Set("net.ipv4.ip_forward", param.Int(1))
	m.Set("net.bridge.bridge-nf-call-iptables", param.Int(1))
	m.Set("net.bridge.bridge-nf-call-ip6tables", param.Int(1))
	m.Set("net.netfilter.nf_conntrack_max", param.Int(clamp(gb*32768, 131072, 2097152)))

	return m
}
