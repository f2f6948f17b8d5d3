package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/kerntune/pkg/kerntune/config"
	"github.com/jamesainslie/kerntune/pkg/kerntune/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View generation history",
	Long: `View the history of past generation runs.

Each run records the profile, the hardware facts it resolved against,
the number of parameters generated, and where the artifact was written.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a specific run",
	Long: `Display detailed information about a specific generation run.
IDs may be abbreviated to a unique prefix of at least four characters.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryShow,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean up old history entries",
	Long:  `Remove history entries older than the configured retention period.`,
	RunE:  runHistoryClean,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries to show")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory returns the history store at the configured path.
func openHistory() (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return history.Open(history.DefaultPath())
	}
	return history.Open(cfg.History.Path)
}

// runHistory lists recent generation runs.
func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		printInfo("No history entries found.")
		printInfo("Run 'kerntune' to generate a parameter file.")
		return nil
	}

	fmt.Printf("\n%-10s  %-19s  %-14s  %-6s  %s\n", "ID", "GENERATED", "PROFILE", "KEYS", "OUTPUT")
	fmt.Println(strings.Repeat("-", 80))

	for _, e := range entries {
		fmt.Printf("%-10s  %-19s  %-14s  %-6d  %s\n",
			shortID(e.ID),
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Profile,
			e.KeyCount,
			e.OutputPath,
		)
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("\nShowing %d entries. Use --limit to see more.\n", len(entries))
	fmt.Println("Use 'kerntune history show <id>' for details on a specific run.")
	return nil
}

// runHistoryShow displays details of a specific run.
func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	e, err := store.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	fmt.Println("\nGeneration Run")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("ID:          %s\n", e.ID)
	fmt.Printf("Generated:   %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Profile:     %s\n", e.Profile)
	fmt.Printf("IPv6:        %s\n", ipv6Label(e.DisableIPv6))
	fmt.Printf("Parameters:  %d\n", e.KeyCount)
	fmt.Printf("Output:      %s\n", e.OutputPath)
	fmt.Printf("SHA-256:     %s\n", e.ContentHash)

	fmt.Println("\nHardware Facts")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Cores:       %d physical / %d logical\n", e.Facts.Cores, e.Facts.Threads)
	fmt.Printf("RAM:         %d GB\n", e.Facts.RAMGB)
	fmt.Printf("NIC:         %d Mbps\n", e.Facts.NICMbps)
	fmt.Printf("Disk:        %s\n", e.Facts.Disk)
	fmt.Printf("Container:   %v\n", e.Facts.Container)
	return nil
}

// runHistoryClean removes entries older than the retention period.
func runHistoryClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	retention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
	removed, err := store.Clean(retention)
	if err != nil {
		return fmt.Errorf("failed to clean history: %w", err)
	}

	printInfo("Removed %d entries older than %d days.", removed, cfg.History.RetentionDays)
	return nil
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func ipv6Label(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "enabled (hardened)"
}
