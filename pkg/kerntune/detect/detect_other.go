//go:build !linux

package detect

import (
	"runtime"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
)

// detect returns conservative defaults on non-Linux platforms. The
// artifact targets Linux kernels, but generating one from another OS
// (with manual fact overrides) is still supported.
func detect() (facts.Facts, error) {
	logger.Debug("non-linux host, using fallback facts")
	return facts.Facts{
		Cores:   runtime.NumCPU(),
		Threads: runtime.NumCPU(),
		RAMGB:   defaultRAMGB,
		NICMbps: defaultNICMbps,
		Disk:    facts.SSD,
	}, nil
}
