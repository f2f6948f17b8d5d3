package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/kerntune/pkg/kerntune/config"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available workload profiles",
	Long: `List the workload profiles kerntune can generate parameters for,
with a short description of each.`,
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

// runProfiles lists every profile with its description.
func runProfiles(cmd *cobra.Command, args []string) error {
	defaultProfile := viper.GetString("default_profile")
	if defaultProfile == "" {
		defaultProfile = config.DefaultProfile
	}

	fmt.Println("Available profiles:")
	for _, p := range profile.All() {
		marker := " "
		if p.String() == defaultProfile {
			marker = "*"
		}
		fmt.Printf("  %s %-16s %s\n", marker, p, p.Description())
	}
	fmt.Println("\n* = default. Select with --profile or default_profile in config.")
	return nil
}
