package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

func testRequest() Request {
	return Request{
		Facts:      facts.Facts{Cores: 4, Threads: 4, RAMGB: 8, NICMbps: 1000, Disk: facts.HDD},
		Profile:    profile.General,
		TargetPath: "/etc/sysctl.d/99-kerntune.conf",
		Timestamp:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResolveEndToEnd(t *testing.T) {
	art, err := Resolve(testRequest())
	require.NoError(t, err)

	v, ok := art.Lookup("vm.swappiness")
	require.True(t, ok)
	assert.Equal(t, int64(20), v.Int64(), "general profile override should win over baseline")

	v, ok = art.Lookup("vm.min_free_kbytes")
	require.True(t, ok)
	assert.Equal(t, int64(32768), v.Int64())

	v, ok = art.Lookup("net.core.somaxconn")
	require.True(t, ok)
	assert.Equal(t, int64(4096), v.Int64())
}

func TestResolveDeterministic(t *testing.T) {
	first, err := Resolve(testRequest())
	require.NoError(t, err)
	second, err := Resolve(testRequest())
	require.NoError(t, err)

	require.Equal(t, len(first.Entries), len(second.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].Key, second.Entries[i].Key)
		assert.True(t, first.Entries[i].Value.Equal(second.Entries[i].Value),
			"value mismatch for %s", first.Entries[i].Key)
	}
}

func TestResolveSortedUniqueKeys(t *testing.T) {
	art, err := Resolve(testRequest())
	require.NoError(t, err)

	seen := make(map[param.Key]bool)
	for i, e := range art.Entries {
		assert.False(t, seen[e.Key], "duplicate key %s", e.Key)
		seen[e.Key] = true
		if i > 0 {
			assert.Less(t, string(art.Entries[i-1].Key), string(e.Key),
				"keys not strictly ascending at %d", i)
		}
	}
}

func TestResolveProfilePrecedence(t *testing.T) {
	// Baseline sets rmem_max to 16 MiB at gigabit; the general profile
	// overrides it down to 8 MiB. The profile layer must win.
	art, err := Resolve(testRequest())
	require.NoError(t, err)

	v, ok := art.Lookup("net.core.rmem_max")
	require.True(t, ok)
	assert.Equal(t, int64(8388608), v.Int64())
}

func TestResolveIPv6Layers(t *testing.T) {
	req := testRequest()
	req.DisableIPv6 = true
	art, err := Resolve(req)
	require.NoError(t, err)

	v, ok := art.Lookup("net.ipv6.conf.all.disable_ipv6")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int64())
	_, ok = art.Lookup("net.ipv6.neigh.default.gc_thresh1")
	assert.False(t, ok, "hardening keys must be absent when IPv6 is disabled")

	req.DisableIPv6 = false
	art, err = Resolve(req)
	require.NoError(t, err)

	v, ok = art.Lookup("net.ipv6.conf.all.disable_ipv6")
	require.True(t, ok)
	assert.Equal(t, int64(0), v.Int64())
	v, ok = art.Lookup("net.ipv6.neigh.default.gc_thresh3")
	require.True(t, ok)
	assert.Equal(t, int64(8192), v.Int64())
}

func TestResolveUnionOfLayers(t *testing.T) {
	// A key touched only by the profile layer must still appear.
	req := testRequest()
	req.Profile = profile.Database
	art, err := Resolve(req)
	require.NoError(t, err)

	_, ok := art.Lookup("kernel.shmmax")
	assert.True(t, ok, "profile-only key missing from merged output")
	_, ok = art.Lookup("net.ipv4.tcp_fastopen")
	assert.True(t, ok, "baseline-only key missing from merged output")
}

func TestResolveInvalidFacts(t *testing.T) {
	req := testRequest()
	req.Facts.Cores = 0
	_, err := Resolve(req)
	require.ErrorIs(t, err, facts.ErrInvalidFact)
}

func TestResolveUnknownProfile(t *testing.T) {
	req := testRequest()
	req.Profile = profile.Profile("mainframe")
	_, err := Resolve(req)
	require.ErrorIs(t, err, profile.ErrUnknownProfile)
}

func TestResolveDefaultsTimestamp(t *testing.T) {
	req := testRequest()
	req.Timestamp = time.Time{}
	art, err := Resolve(req)
	require.NoError(t, err)
	assert.False(t, art.GeneratedAt.IsZero())
}
