package render

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
)

// ConfFormatter renders the artifact as a sysctl.d configuration file:
// a commented header block followed by one "key = value" line per entry,
// keys sorted. This is the canonical artifact format.
type ConfFormatter struct{}

// Format writes the formatted artifact to the buffer.
func (f *ConfFormatter) Format(w *bytes.Buffer, a *engine.Artifact) error {
	f.writeHeader(w, a)
	for _, e := range a.Entries {
		fmt.Fprintf(w, "%s = %s\n", e.Key, e.Value)
	}
	return nil
}

// writeHeader emits the comment block: profile, hardware summary,
// timestamp, install path, and the apply hint.
func (f *ConfFormatter) writeHeader(w *bytes.Buffer, a *engine.Artifact) {
	fmt.Fprintf(w, "# Generated by kerntune\n")
	fmt.Fprintf(w, "# Profile: %s - %s\n", a.Profile, a.Profile.Description())
	fmt.Fprintf(w, "# Hardware: %s\n", HardwareSummary(a))
	fmt.Fprintf(w, "# Generated: %s\n", a.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
	if a.TargetPath != "" {
		fmt.Fprintf(w, "# Install to: %s\n", a.TargetPath)
	}
	fmt.Fprintf(w, "# Apply with: sysctl --system\n")
	w.WriteByte('\n')
}

// HardwareSummary renders the one-line hardware description used in
// headers and the wizard confirmation screen.
func HardwareSummary(a *engine.Artifact) string {
	f := a.Facts
	summary := fmt.Sprintf("%d cores / %d threads, %s RAM, %s link, %s disk",
		f.Cores, f.Threads,
		humanize.IBytes(uint64(f.RAMGB)*1024*1024*1024),
		humanize.SI(float64(f.NICMbps)*1e6, "bps"),
		f.Disk)
	if f.Container {
		summary += ", containerized"
	}
	return summary
}

func init() {
	Register("conf", func() Formatter {
		return &ConfFormatter{}
	})
}

// Ensure ConfFormatter implements Formatter.
var _ Formatter = (*ConfFormatter)(nil)
