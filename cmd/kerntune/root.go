package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/kerntune/pkg/kerntune/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "kerntune",
		Short: "Generate tuned sysctl parameters for this machine",
		Long: `Kerntune inspects the machine's hardware (CPU topology, RAM, network
link speed, storage medium) and computes a tuned set of kernel sysctl
parameters for a chosen workload profile.

By default, kerntune launches an interactive wizard to review detected
hardware and pick a profile. Use --no-interactive for scripted runs.

The generated file is never applied to the running kernel; install it
under /etc/sysctl.d/ and run 'sysctl --system' yourself.

Examples:
  kerntune                             # Interactive wizard
  kerntune -n -p database              # Generate for the database profile
  kerntune -n -p web -o -              # Print to stdout
  kerntune -n --ram 64 --disk nvme     # Override detected facts
  kerntune show -p general             # Diff recommendations vs /proc/sys
  kerntune profiles                    # List workload profiles`,
		RunE: runGenerate,
	}
)

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/kerntune/config.yaml)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "workload profile (see 'kerntune profiles')")
	rootCmd.PersistentFlags().Bool("disable-ipv6", false, "emit parameters that disable IPv6")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Fact overrides (persistent so 'show' can use them too)
	rootCmd.PersistentFlags().Int("cores", 0, "override detected physical core count")
	rootCmd.PersistentFlags().Int("threads", 0, "override detected logical CPU count")
	rootCmd.PersistentFlags().Int("ram", 0, "override detected RAM in GB")
	rootCmd.PersistentFlags().Int("nic", 0, "override detected NIC speed in Mbps")
	rootCmd.PersistentFlags().String("disk", "", "override detected disk medium (hdd, ssd, nvme)")
	rootCmd.PersistentFlags().Bool("container", false, "treat the host as a container")

	// Generate-only flags
	rootCmd.Flags().StringP("output", "o", "", "output path ('-' for stdout; default: /etc/sysctl.d/99-kerntune.conf)")
	rootCmd.Flags().StringP("format", "f", "", "output format (conf, table, json, yaml)")
	rootCmd.Flags().BoolP("no-interactive", "n", false, "disable wizard, use detected facts and flags")
	rootCmd.Flags().Bool("no-history", false, "don't record this run in history")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("disable_ipv6", rootCmd.PersistentFlags().Lookup("disable-ipv6"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("no_interactive", rootCmd.Flags().Lookup("no-interactive"))
	_ = viper.BindPFlag("no_history", rootCmd.Flags().Lookup("no-history"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "kerntune"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "kerntune"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("KERNTUNE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	viper.SetDefault("default_profile", config.DefaultProfile)
	viper.SetDefault("output.format", config.DefaultFormat)
	viper.SetDefault("output.dir", config.DefaultOutputDir)
	viper.SetDefault("output.file", config.DefaultOutputFile)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.retention_days", config.DefaultRetentionDays)

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
