// Package facts defines the immutable hardware snapshot every rule set is
// evaluated against. A Facts value is captured once per run, either from
// detection or manual entry, and passed by value into rule functions.
package facts

import (
	"errors"
	"fmt"
	"strings"
)

// DiskMedium classifies the primary storage device.
type DiskMedium int

// Supported storage media.
const (
	HDD DiskMedium = iota
	SSD
	NVMe
)

// String returns the display name of the medium.
func (d DiskMedium) String() string {
	switch d {
	case HDD:
		return "HDD"
	case SSD:
		return "SSD"
	case NVMe:
		return "NVMe"
	default:
		return "unknown"
	}
}

// ErrInvalidFact is returned when a hardware fact violates its constraint.
var ErrInvalidFact = errors.New("invalid hardware fact")

// ParseDiskMedium parses a user-supplied medium name (case-insensitive).
func ParseDiskMedium(s string) (DiskMedium, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hdd":
		return HDD, nil
	case "ssd":
		return SSD, nil
	case "nvme":
		return NVMe, nil
	default:
		return HDD, fmt.Errorf("%w: unrecognized disk medium %q", ErrInvalidFact, s)
	}
}

// Facts is the hardware snapshot consumed by the rule engine.
type Facts struct {
	// Cores is the number of physical CPU cores.
	Cores int

	// Threads is the number of logical CPUs (hardware threads).
	Threads int

	// RAMGB is the total physical RAM in whole gigabytes, minimum 1.
	RAMGB int

	// NICMbps is the primary network link speed in megabits per second.
	NICMbps int

	// Disk is the primary storage medium.
	Disk DiskMedium

	// Container reports whether the host is itself a container. Kernel-global
	// tunables are not emitted for containerized hosts.
	Container bool
}

// FastDisk reports whether the storage medium is flash-backed.
func (f Facts) FastDisk() bool {
	return f.Disk == SSD || f.Disk == NVMe
}

// Validate checks every fact against its constraint. Rule evaluation must
// not be attempted on a Facts value that fails validation.
func (f Facts) Validate() error {
	if f.Cores <= 0 {
		return fmt.Errorf("%w: cores must be positive, got %d", ErrInvalidFact, f.Cores)
	}
	if f.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidFact, f.Threads)
	}
	if f.RAMGB < 1 {
		return fmt.Errorf("%w: ram must be at least 1 GB, got %d", ErrInvalidFact, f.RAMGB)
	}
	if f.NICMbps <= 0 {
		return fmt.Errorf("%w: nic speed must be positive, got %d", ErrInvalidFact, f.NICMbps)
	}
	switch f.Disk {
	case HDD, SSD, NVMe:
	default:
		return fmt.Errorf("%w: unrecognized disk medium %d", ErrInvalidFact, int(f.Disk))
	}
	return nil
}
