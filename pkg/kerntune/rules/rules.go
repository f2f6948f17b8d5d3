// Package rules contains the parameter rule sets: the hardware baseline,
// one override rule set per workload profile, and the IPv6 toggle rules.
//
// Every rule function is pure: it maps a facts.Facts snapshot to a
// param.Map and reads no other state. Profile rule sets never depend on
// another profile's output. The common shapes are clamp-to-band
// (raw = fact x constant, clamped into [low, high]) and tiering (ordered
// threshold scan, highest threshold first, >= includes the boundary in
// the higher tier).
package rules

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
)

// clamp constrains raw into [lo, hi]. Bands are chosen so the floor is
// always reached at the smallest valid facts (never zero or negative).
func clamp(raw, lo, hi int64) int64 {
	return min(max(raw, lo), hi)
}

// bufferTier is one row of a NIC-speed tier table for socket buffer sizing.
type bufferTier struct {
	minMbps int
	rmemMax int64
	wmemMax int64
	tcpRmem []int64
	tcpWmem []int64
}

// applyBufferTiers writes the buffer keys for the first tier whose
// threshold the link speed meets. Tables are ordered highest threshold
// first; the final row must have minMbps 0 so a tier always matches.
func applyBufferTiers(m *param.Map, nicMbps int, tiers []bufferTier) {
	for _, t := range tiers {
		if nicMbps >= t.minMbps {
			m.Set("net.core.rmem_max", param.Int(t.rmemMax))
			m.Set("net.core.wmem_max", param.Int(t.wmemMax))
			m.Set("net.ipv4.tcp_rmem", param.Tuple(t.tcpRmem...))
			m.Set("net.ipv4.tcp_wmem", param.Tuple(t.tcpWmem...))
			return
		}
	}
}

// pickTier returns the value of the first (threshold, value) row the
// input meets. Rows are ordered highest threshold first; the final row
// must have threshold 0.
func pickTier(input int, rows []tierRow) int64 {
	for _, r := range rows {
		if input >= r.threshold {
			return r.value
		}
	}
	return 0
}

// tierRow is one (threshold, value) row of an ordered tier table.
type tierRow struct {
	threshold int
	value     int64
}
