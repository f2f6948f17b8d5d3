package rules

import (
	"fmt"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/param"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

// RuleFunc computes a profile's override map from hardware facts.
type RuleFunc func(facts.Facts) *param.Map

// registry maps each profile to its rule function. Each entry is
// independently testable; no rule reads another profile's output.
var registry = map[profile.Profile]RuleFunc{
	profile.General:        generalRules,
	profile.Virtualization: virtualizationRules,
	profile.Web:            webRules,
	profile.Database:       databaseRules,
	profile.Cache:          cacheRules,
	profile.Compute:        computeRules,
	profile.Fileserver:     fileserverRules,
	profile.Network:        networkRules,
	profile.Container:      containerRules,
	profile.Development:    developmentRules,
}

// ForProfile returns the rule function for p. Selection outside the fixed
// profile set is rejected here and never reaches the engine.
func ForProfile(p profile.Profile) (RuleFunc, error) {
	fn, ok := registry[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", profile.ErrUnknownProfile, p)
	}
	return fn, nil
}
