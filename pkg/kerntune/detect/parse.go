package detect

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
)

// physicalCores counts distinct (physical id, core id) pairs in
// /proc/cpuinfo content. Returns 0 when the topology fields are absent
// (common on ARM and in VMs), in which case the caller falls back to the
// logical CPU count.
func physicalCores(r io.Reader) int {
	seen := make(map[string]bool)
	var physID, coreID string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "physical id"):
			physID = valueAfterColon(line)
		case strings.HasPrefix(line, "core id"):
			coreID = valueAfterColon(line)
			seen[physID+"/"+coreID] = true
		case line == "":
			physID, coreID = "", ""
		}
	}
	return len(seen)
}

func valueAfterColon(line string) string {
	_, v, _ := strings.Cut(line, ":")
	return strings.TrimSpace(v)
}

// nicSpeedMbps returns the highest reported link speed among physical
// interfaces under sysNetDir (normally /sys/class/net). Virtual
// interfaces have no device symlink and are skipped, as are interfaces
// reporting no or negative speed (link down).
func nicSpeedMbps(sysNetDir string) int {
	entries, err := os.ReadDir(sysNetDir)
	if err != nil {
		return 0
	}

	best := 0
	for _, e := range entries {
		name := e.Name()
		if name == "lo" {
			continue
		}
		ifaceDir := filepath.Join(sysNetDir, name)
		if _, err := os.Stat(filepath.Join(ifaceDir, "device")); err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(ifaceDir, "speed"))
		if err != nil {
			continue
		}
		speed, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil || speed <= 0 {
			continue
		}
		if speed > best {
			best = speed
		}
	}
	return best
}

// diskMedium classifies the first real block device under sysBlockDir
// (normally /sys/block). NVMe devices are recognized by name; everything
// else is classified by the rotational queue attribute.
func diskMedium(sysBlockDir string) (facts.DiskMedium, bool) {
	entries, err := os.ReadDir(sysBlockDir)
	if err != nil {
		return facts.HDD, false
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "loop") || strings.HasPrefix(name, "ram") ||
			strings.HasPrefix(name, "dm-") || strings.HasPrefix(name, "zram") ||
			strings.HasPrefix(name, "sr") || strings.HasPrefix(name, "fd") {
			continue
		}
		if strings.HasPrefix(name, "nvme") {
			return facts.NVMe, true
		}
		data, err := os.ReadFile(filepath.Join(sysBlockDir, name, "queue", "rotational"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(data)) == "0" {
			return facts.SSD, true
		}
		return facts.HDD, true
	}
	return facts.HDD, false
}

// inContainer reports whether cgroup content or marker files identify a
// container environment. markers are checked for existence; cgroup is
// the content of /proc/1/cgroup.
func inContainer(cgroup string, markers ...string) bool {
	for _, m := range markers {
		if _, err := os.Stat(m); err == nil {
			return true
		}
	}
	for _, runtime := range []string{"docker", "containerd", "kubepods", "lxc", "libpod"} {
		if strings.Contains(cgroup, runtime) {
			return true
		}
	}
	return false
}
