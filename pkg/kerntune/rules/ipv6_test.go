package rules

import (
	"testing"

	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

var ipv6DisableKeys = []param.Key{
	"net.ipv6.conf.all.disable_ipv6",
	"net.ipv6.conf.default.disable_ipv6",
	"net.ipv6.conf.lo.disable_ipv6",
}

func TestIPv6Disabled(t *testing.T) {
	m := IPv6(true)

	if m.Len() != 3 {
		t.Fatalf("disabled branch produced %d keys, want exactly 3", m.Len())
	}
	for _, key := range ipv6DisableKeys {
		v, ok := m.Get(key)
		if !ok {
			t.Errorf("key %q missing", key)
			continue
		}
		if v.Int64() != 1 {
			t.Errorf("%s = %s, want 1", key, v)
		}
	}
}

func TestIPv6Enabled(t *testing.T) {
	m := IPv6(false)

	for _, key := range ipv6DisableKeys {
		v, ok := m.Get(key)
		if !ok {
			t.Errorf("key %q missing", key)
			continue
		}
		if v.Int64() != 0 {
			t.Errorf("%s = %s, want 0", key, v)
		}
	}

	hardening := map[param.Key]int64{
		"net.ipv6.conf.all.accept_redirects":     0,
		"net.ipv6.conf.default.accept_redirects": 0,
		"net.ipv6.conf.all.accept_source_route":  0,
		"net.ipv6.conf.default.use_tempaddr":     2,
		"net.ipv6.neigh.default.gc_thresh1":      1024,
		"net.ipv6.neigh.default.gc_thresh2":      4096,
		"net.ipv6.neigh.default.gc_thresh3":      8192,
	}
	for key, want := range hardening {
		v, ok := m.Get(key)
		if !ok {
			t.Errorf("hardening key %q missing", key)
			continue
		}
		if v.Int64() != want {
			t.Errorf("%s = %s, want %d", key, v, want)
		}
	}

	if m.Len() != len(ipv6DisableKeys)+len(hardening) {
		t.Errorf("enabled branch produced %d keys, want %d", m.Len(), len(ipv6DisableKeys)+len(hardening))
	}
}

func TestIPv6BranchesAreExclusive(t *testing.T) {
	disabled := IPv6(true)
	if _, ok := disabled.Get("net.ipv6.neigh.default.gc_thresh1"); ok {
		t.Error("disabled branch must omit the hardening set")
	}
}
