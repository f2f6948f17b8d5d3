// Package detect gathers hardware facts for the running host: CPU
// topology, RAM, primary NIC link speed, storage medium, and container
// status. It is a data source only; all decisions about what the facts
// mean belong to the rule packages.
//
// Detection is best-effort. Probes that fail fall back to conservative
// defaults rather than erroring, since the operator can override any
// detected value manually.
package detect

import (
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/logging"
)

// logger is the package-level logger for detection operations.
var logger = logging.Get("detect")

// Fallback values for probes that cannot run on this host.
const (
	// defaultRAMGB assumes a modern 8 GB host when sysinfo is unavailable.
	defaultRAMGB = 8

	// defaultNICMbps assumes gigabit when no NIC reports a speed.
	defaultNICMbps = 1000
)

// Detect returns the hardware facts for the running host. The returned
// facts always pass facts.Validate.
func Detect() (facts.Facts, error) {
	return detect()
}
