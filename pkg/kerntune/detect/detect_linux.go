//go:build linux

package detect

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
)

// detect probes /proc, /sys, and sysinfo for the host's hardware facts.
func detect() (facts.Facts, error) {
	f := facts.Facts{
		Threads: runtime.NumCPU(),
		RAMGB:   detectRAMGB(),
		NICMbps: defaultNICMbps,
		Disk:    facts.SSD,
	}

	f.Cores = f.Threads
	if file, err := os.Open("/proc/cpuinfo"); err == nil {
		if cores := physicalCores(file); cores > 0 {
			f.Cores = cores
		}
		_ = file.Close()
	}

	if speed := nicSpeedMbps("/sys/class/net"); speed > 0 {
		f.NICMbps = speed
	} else {
		logger.Debug("no NIC reported a link speed, assuming gigabit")
	}

	if medium, ok := diskMedium("/sys/block"); ok {
		f.Disk = medium
	} else {
		logger.Debug("no block device classified, assuming SSD")
	}

	cgroup, _ := os.ReadFile("/proc/1/cgroup")
	f.Container = inContainer(string(cgroup), "/.dockerenv", "/run/.containerenv")

	logger.Debug("detected hardware",
		"cores", f.Cores, "threads", f.Threads, "ram_gb", f.RAMGB,
		"nic_mbps", f.NICMbps, "disk", f.Disk, "container", f.Container)

	return f, nil
}

// detectRAMGB reads total physical RAM via sysinfo, rounding up so a
// nominal 16 GB module reporting slightly under does not tier down.
func detectRAMGB() int {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return defaultRAMGB
	}
	totalBytes := uint64(info.Totalram) * uint64(info.Unit)
	const gib = 1024 * 1024 * 1024
	gb := int((totalBytes + gib - 1) / gib)
	if gb < 1 {
		return 1
	}
	return gb
}
