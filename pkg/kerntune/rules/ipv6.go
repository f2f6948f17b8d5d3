package rules

import "github.com/jamesainslie/kerntune/pkg/kerntune/param"

// IPv6 computes the IPv6 override layer. The two branches are mutually
// exclusive and hardware-independent: disabling IPv6 emits exactly the
// three disable keys, while keeping it enabled emits the hardening and
// neighbor-table set with the disable keys pinned to 0.
func IPv6(disabled bool) *param.Map {
	m := param.NewMap()

	if disabled {
		m.Set("net.ipv6.conf.all.disable_ipv6", param.Int(1))
		m.Set("net.ipv6.conf.default.disable_ipv6", param.Int(1))
		m.Set("net.ipv6.conf.lo.disable_ipv6", param.Int(1))
		return m
	}

	m.Set("net.ipv6.conf.all.disable_ipv6", param.Int(0))
	m.Set("net.ipv6.conf.default.disable_ipv6", param.Int(0))
	m.Set("net.ipv6.conf.lo.disable_ipv6", param.Int(0))
	m.Set("net.ipv6.conf.all.accept_redirects", param.Int(0))
	m.Set("net.ipv6.conf.default.accept_redirects", param.Int(0))
	m.Set("net.ipv6.conf.all.accept_source_route", param.Int(0))
	m.Set("net.ipv6.conf.default.use_tempaddr", param.Int(2))
	m.Set("net.ipv6.neigh.default.gc_thresh1", param.Int(1024))
	m.Set("net.ipv6.neigh.default.gc_thresh2", param.Int(4096))
	m.Set("net.ipv6.neigh.default.gc_thresh3", param.Int(8192))

	return m
}
