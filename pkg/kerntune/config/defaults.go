// Package config provides configuration management for kerntune.
package config

// Default configuration values for kerntune.
const (
	// DefaultProfile is used when no profile is selected.
	DefaultProfile = "general"

	// DefaultFormat is the output format when none is specified.
	DefaultFormat = "conf"

	// DefaultOutputDir is the distro-neutral sysctl drop-in directory.
	DefaultOutputDir = "/etc/sysctl.d"

	// DefaultOutputFile is the artifact file name within the output
	// directory. The 99- prefix keeps it last in sysctl.d apply order.
	DefaultOutputFile = "99-kerntune.conf"

	// DefaultRetentionDays is how long history entries are retained.
	DefaultRetentionDays = 90
)
