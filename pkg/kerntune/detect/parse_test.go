package detect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
)

const cpuinfoTwoCoreHT = `processor	: 0
physical id	: 0
core id	: 0

processor	: 1
physical id	: 0
core id	: 1

processor	: 2
physical id	: 0
core id	: 0

processor	: 3
physical id	: 0
core id	: 1
`

const cpuinfoDualSocket = `processor	: 0
physical id	: 0
core id	: 0

processor	: 1
physical id	: 1
core id	: 0
`

func TestPhysicalCores(t *testing.T) {
	tests := []struct {
		name    string
		cpuinfo string
		want    int
	}{
		{name: "two cores with hyperthreading", cpuinfo: cpuinfoTwoCoreHT, want: 2},
		{name: "dual socket single core", cpuinfo: cpuinfoDualSocket, want: 2},
		{name: "no topology fields", cpuinfo: "processor\t: 0\nmodel name\t: something\n", want: 0},
		{name: "empty", cpuinfo: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := physicalCores(strings.NewReader(tt.cpuinfo)); got != tt.want {
				t.Errorf("physicalCores() = %d, want %d", got, tt.want)
			}
		})
	}
}

// writeIface creates a fake /sys/class/net interface directory.
func writeIface(t *testing.T, root, name, speed string, physical bool) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if physical {
		if err := os.MkdirAll(filepath.Join(dir, "device"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if speed != "" {
		if err := os.WriteFile(filepath.Join(dir, "speed"), []byte(speed+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNICSpeedMbps(t *testing.T) {
	root := t.TempDir()
	writeIface(t, root, "lo", "0", false)
	writeIface(t, root, "docker0", "10000", false) // virtual, no device symlink
	writeIface(t, root, "eth0", "1000", true)
	writeIface(t, root, "eth1", "-1", true) // link down
	writeIface(t, root, "eth2", "10000", true)

	if got := nicSpeedMbps(root); got != 10000 {
		t.Errorf("nicSpeedMbps() = %d, want 10000 (fastest physical up link)", got)
	}
}

func TestNICSpeedMbpsNoInterfaces(t *testing.T) {
	if got := nicSpeedMbps(t.TempDir()); got != 0 {
		t.Errorf("nicSpeedMbps() = %d, want 0 for empty dir", got)
	}
}

// writeBlockDev creates a fake /sys/block device directory.
func writeBlockDev(t *testing.T, root, name, rotational string) {
	t.Helper()
	dir := filepath.Join(root, name, "queue")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if rotational != "" {
		if err := os.WriteFile(filepath.Join(dir, "rotational"), []byte(rotational+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiskMedium(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, root string)
		want   facts.DiskMedium
		wantOK bool
	}{
		{
			name:   "nvme recognized by name",
			setup:  func(t *testing.T, root string) { writeBlockDev(t, root, "nvme0n1", "0") },
			want:   facts.NVMe,
			wantOK: true,
		},
		{
			name:   "non-rotational sata is ssd",
			setup:  func(t *testing.T, root string) { writeBlockDev(t, root, "sda", "0") },
			want:   facts.SSD,
			wantOK: true,
		},
		{
			name:   "rotational is hdd",
			setup:  func(t *testing.T, root string) { writeBlockDev(t, root, "sda", "1") },
			want:   facts.HDD,
			wantOK: true,
		},
		{
			name: "loop and ram devices skipped",
			setup: func(t *testing.T, root string) {
				writeBlockDev(t, root, "loop0", "0")
				writeBlockDev(t, root, "ram0", "0")
				writeBlockDev(t, root, "sdb", "1")
			},
			want:   facts.HDD,
			wantOK: true,
		},
		{
			name:   "no devices",
			setup:  func(*testing.T, string) {},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)
			got, ok := diskMedium(root)
			if ok != tt.wantOK {
				t.Fatalf("diskMedium() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("diskMedium() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInContainer(t *testing.T) {
	if inContainer("0::/init.scope") {
		t.Error("plain host cgroup misdetected as container")
	}
	if !inContainer("0::/system.slice/docker-abc123.scope") {
		t.Error("docker cgroup not detected")
	}
	if !inContainer("1:cpu:/kubepods/besteffort/pod1/abc") {
		t.Error("kubepods cgroup not detected")
	}

	marker := filepath.Join(t.TempDir(), ".dockerenv")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !inContainer("0::/init.scope", marker) {
		t.Error("marker file not detected")
	}
}
