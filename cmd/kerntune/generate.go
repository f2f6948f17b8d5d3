package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/kerntune/cmd/kerntune/tui"
	"github.com/jamesainslie/kerntune/pkg/kerntune/config"
	"github.com/jamesainslie/kerntune/pkg/kerntune/detect"
	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
	"github.com/jamesainslie/kerntune/pkg/kerntune/history"
	"github.com/jamesainslie/kerntune/pkg/kerntune/profile"
	"github.com/jamesainslie/kerntune/pkg/kerntune/render"
)

// runGenerate is the root command handler: resolve facts and profile into
// a parameter artifact and write it out.
func runGenerate(cmd *cobra.Command, args []string) error {
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

	disableIPv6 := viper.GetBool("disable_ipv6")

	// Explicit output flags imply a scripted run
	noInteractive := viper.GetBool("no_interactive")
	if viper.GetString("output") != "" || viper.GetString("format") != "" {
		noInteractive = true
	}

	if !noInteractive {
		result, err := tui.Run(tui.Options{
			Facts:       f,
			Profile:     prof,
			DisableIPv6: disableIPv6,
		})
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
		if !result.Accepted {
			printInfo("Cancelled, nothing written.")
			return nil
		}
		f = result.Facts
		prof = result.Profile
		disableIPv6 = result.DisableIPv6
	}

	outPath := viper.GetString("output")
	if outPath == "" {
		outPath = cfg.TargetPath()
	}
	targetPath := outPath
	if targetPath == "-" {
		// Writing to stdout; the header still names the install location
		targetPath = cfg.TargetPath()
	}

	format := viper.GetString("format")
	if format == "" {
		format = cfg.Output.Format
	}
	formatter, err := render.Get(format)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", format, render.Available())
	}

	printVerbose("Facts: %d cores, %d threads, %d GB RAM, %d Mbps NIC, %s disk, container=%v",
		f.Cores, f.Threads, f.RAMGB, f.NICMbps, f.Disk, f.Container)

	artifact, err := engine.Resolve(engine.Request{
		Facts:       f,
		Profile:     prof,
		DisableIPv6: disableIPv6,
		TargetPath:  targetPath,
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, artifact); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outPath == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		printInfo("Wrote %d parameters to %s (profile: %s)", len(artifact.Entries), outPath, prof)
		printInfo("Apply with: sysctl --system")
	}

	recordRun(cfg, artifact, outPath, buf.Bytes())
	return nil
}

// gatherFacts detects hardware and applies any manual fact overrides from
// the command line.
func gatherFacts(cmd *cobra.Command) (facts.Facts, error) {
	f, err := detect.Detect()
	if err != nil {
		printVerbose("Hardware detection incomplete, using defaults: %v", err)
		f = facts.Facts{Cores: 4, Threads: 8, RAMGB: 8, NICMbps: 1000, Disk: facts.SSD}
	}

	flags := cmd.Flags()
	if flags.Changed("cores") {
		f.Cores, _ = flags.GetInt("cores")
	}
	if flags.Changed("threads") {
		f.Threads, _ = flags.GetInt("threads")
	}
	if flags.Changed("ram") {
		f.RAMGB, _ = flags.GetInt("ram")
	}
	if flags.Changed("nic") {
		f.NICMbps, _ = flags.GetInt("nic")
	}
	if flags.Changed("disk") {
		name, _ := flags.GetString("disk")
		medium, err := facts.ParseDiskMedium(name)
		if err != nil {
			return f, err
		}
		f.Disk = medium
	}
	if flags.Changed("container") {
		f.Container, _ = flags.GetBool("container")
	}
	return f, nil
}

// recordRun stores the run in history. History failures never fail the
// generation; the artifact is already written.
func recordRun(cfg *config.Config, artifact *engine.Artifact, outPath string, rendered []byte) {
	if viper.GetBool("no_history") || !cfg.History.Enabled {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		printVerbose("History disabled: %v", err)
		return
	}
	defer store.Close()

	sum := sha256.Sum256(rendered)
	entry := history.Entry{
		CreatedAt:   artifact.GeneratedAt,
		Profile:     artifact.Profile.String(),
		Facts:       artifact.Facts,
		DisableIPv6: artifact.DisableIPv6,
		KeyCount:    len(artifact.Entries),
		OutputPath:  outPath,
		ContentHash: hex.EncodeToString(sum[:]),
	}
	if _, err := store.Record(entry); err != nil {
		printVerbose("Failed to record history entry: %v", err)
	}
}
