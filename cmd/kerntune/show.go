package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/kerntune/pkg/kerntune/config"
	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
	"github.com/jamesainslie/kerntune/pkg/kerntune/live"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Compare recommendations against the running kernel",
	Long: `Resolve the parameter set for this machine and compare each
recommendation against the current value in /proc/sys.

Nothing is modified; this is a read-only report.

Examples:
  kerntune show                  # Full diff for the default profile
  kerntune show -p database      # Diff for the database profile
  kerntune show --prefix vm.     # Only virtual memory parameters
  kerntune show --changed        # Only parameters that would change`,
	RunE: runShow,
}

var (
	showPrefix  string
	showChanged bool
)

func init() {
	showCmd.Flags().StringVar(&showPrefix, "prefix", "", "only show keys with this prefix (e.g. vm., net.ipv4.)")
	showCmd.Flags().BoolVar(&showChanged, "changed", false, "only show parameters that differ from the running kernel")
	rootCmd.AddCommand(showCmd)
}

// runShow resolves the parameter set and diffs it against /proc/sys.
func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	f, err := gatherFacts(cmd)
	if err != nil {
		return err
	}

	profileName := viper.GetString("profile")
	if profileName == "" {
		profileName = cfg.DefaultProfile
	}
	prof, err := profile.Parse(profileName)
	if err != nil {
		return err
	}

	artifact, err := engine.Resolve(engine.Request{
		Facts:       f,
		Profile:     prof,
		DisableIPv6: viper.GetBool("disable_ipv6"),
		TargetPath:  cfg.TargetPath(),
	})
	if err != nil {
		return err
	}

	snapshot, err := live.Read(live.DefaultRoot)
	if err != nil {
		return fmt.Errorf("failed to read running kernel parameters: %w", err)
	}
	printVerbose("Read %d tunables from %s", snapshot.Len(), live.DefaultRoot)

	diffs := snapshot.Compare(artifact.Entries)

	fmt.Printf("\nProfile: %s (%s)\n\n", prof, prof.Description())
	fmt.Printf("%-44s  %-20s  %-20s  %s\n", "KEY", "CURRENT", "RECOMMENDED", "")
	fmt.Println(strings.Repeat("-", 92))

	matches, changes, missing := 0, 0, 0
	for _, d := range diffs {
		if showPrefix != "" && !strings.HasPrefix(string(d.Key), showPrefix) {
			continue
		}

		current := "(not present)"
		status := ""
		switch {
		case !d.HasCurrent:
			missing++
		case d.Match:
			current = d.Current.String()
			status = "ok"
			matches++
		default:
			current = d.Current.String()
			status = "change"
			changes++
		}

		if showChanged && status != "change" {
			continue
		}
		fmt.Printf("%-44s  %-20s  %-20s  %s\n", d.Key, current, d.Recommended, status)
	}

	fmt.Println(strings.Repeat("-", 92))
	fmt.Printf("%d parameters: %d already match, %d would change, %d not present\n",
		len(diffs), matches, changes, missing)
	return nil
}
