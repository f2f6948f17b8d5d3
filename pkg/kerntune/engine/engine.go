// Package engine resolves hardware facts, a workload profile, and the
// IPv6 toggle into the final ordered parameter artifact.
//
// Resolution is a pure three-layer merge: the hardware baseline, then the
// selected profile's override map, then the IPv6 override map. Later
// layers win whole-value on key collisions. The merged map is sorted by
// key in lexicographic byte order, so output is deterministic for
// identical inputs apart from the generation timestamp.
package engine

import (
	"time"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/logging"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
	"github.com/jamesainslie/kerntune/pkg/kerntune/rules"
)

// logger is the package-level logger for resolution operations.
var logger = logging.Get("engine")

// Request captures everything a resolution needs. All fields are taken by
// value before resolution starts and never mutated during it, so the
// engine is safe to invoke concurrently for different requests.
type Request struct {
	// Facts is the hardware snapshot. Must pass facts.Validate.
	Facts facts.Facts

	// Profile selects the override rule set.
	Profile profile.Profile

	// DisableIPv6 selects the IPv6 rule branch.
	DisableIPv6 bool

	// TargetPath is the install path quoted in the rendered header. The
	// engine never writes there itself.
	TargetPath string

	// Timestamp is the generation time stamped into the header. The zero
	// value means time.Now; tests inject a fixed time for byte-identical
	// output.
	Timestamp time.Time
}

// Artifact is the resolved parameter set plus the metadata the renderers
// put in the header block. Built fresh each run and discarded after
// rendering.
type Artifact struct {
	Profile     profile.Profile
	Facts       facts.Facts
	DisableIPv6 bool
	TargetPath  string
	GeneratedAt time.Time

	// Entries is the final ordered sequence: every key touched by any
	// layer exactly once, sorted by key.
	Entries []param.Entry
}

// Resolve merges the three rule layers for the request. Invalid facts and
// unknown profiles are rejected here; nothing malformed reaches the rule
// functions.
func Resolve(req Request) (*Artifact, error) {
	if err := req.Facts.Validate(); err != nil {
		return nil, err
	}
	rule, err := rules.ForProfile(req.Profile)
	if err != nil {
		return nil, err
	}

	merged := rules.Baseline(req.Facts)
	baseCount := merged.Len()
	merged.Apply(rule(req.Facts))
	merged.Apply(rules.IPv6(req.DisableIPv6))

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	logger.Debug("resolved parameter set",
		"profile", req.Profile,
		"baseline_keys", baseCount,
		"total_keys", merged.Len())

	return &Artifact{
		Profile:     req.Profile,
		Facts:       req.Facts,
		DisableIPv6: req.DisableIPv6,
		TargetPath:  req.TargetPath,
		GeneratedAt: ts,
		Entries:     merged.Entries(),
	}, nil
}

// Lookup returns the resolved value for a key, if present.
func (a *Artifact) Lookup(key param.Key) (param.Value, bool) {
	for _, e := range a.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return param.Value{}, false
}
