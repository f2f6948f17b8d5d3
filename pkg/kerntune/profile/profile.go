// Package profile defines the closed set of workload profiles an operator
// can tune for. A profile selects which override rule set is layered on top
// of the hardware baseline.
package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Profile identifies a workload archetype.
type Profile string

// The fixed profile set. Parse rejects anything else.
const (
	General        Profile = "general"
	Virtualization Profile = "virtualization"
	Web            Profile = "web"
	Database       Profile = "database"
	Cache          Profile = "cache"
	Compute        Profile = "compute"
	Fileserver     Profile = "fileserver"
	Network        Profile = "network"
	Container      Profile = "container"
	Development    Profile = "development"
)

// ErrUnknownProfile is returned for selections outside the fixed set.
var ErrUnknownProfile = errors.New("unknown profile")

// descriptions maps each profile to its one-line operator-facing summary.
var descriptions = map[Profile]string{
	General:        "Balanced defaults for mixed workloads",
	Virtualization: "KVM/QEMU hypervisor host",
	Web:            "HTTP/application server with many short-lived connections",
	Database:       "Relational database server (PostgreSQL, MySQL)",
	Cache:          "In-memory cache or key-value store (Redis, Memcached)",
	Compute:        "CPU-bound batch and HPC workloads",
	Fileserver:     "NFS/SMB file server",
	Network:        "Router, firewall, or load balancer",
	Container:      "Container orchestration host (Docker, Kubernetes)",
	Development:    "Developer workstation with IDEs and debuggers",
}

// String returns the profile identifier.
func (p Profile) String() string { return string(p) }

// Description returns the operator-facing summary for the profile.
func (p Profile) Description() string { return descriptions[p] }

// Valid reports whether p belongs to the fixed set.
func (p Profile) Valid() bool {
	_, ok := descriptions[p]
	return ok
}

// Parse resolves a user-supplied profile name. The match is
// case-insensitive; unknown names return ErrUnknownProfile.
func Parse(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, s, strings.Join(Names(), ", "))
	}
	return p, nil
}

// All returns every profile sorted by identifier.
func All() []Profile {
	all := make([]Profile, 0, len(descriptions))
	for p := range descriptions {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// Names returns every profile identifier sorted alphabetically.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	return names
}
