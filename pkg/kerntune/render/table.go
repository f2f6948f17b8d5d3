package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/jamesainslie/kerntune/pkg/kerntune/engine"
)

// Styles for the table formatter, using the ANSI 256-color palette.
var (
	tableHeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	tableTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	tableMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	tableSubsystemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))
)

// TableFormatter renders the artifact as a styled terminal table grouped
// by subsystem (the first dotted key segment). Intended for human review
// before installing the conf artifact.
type TableFormatter struct{}

// Format writes the formatted artifact to the buffer.
func (f *TableFormatter) Format(w *bytes.Buffer, a *engine.Artifact) error {
	header := tableTitleStyle.Render(fmt.Sprintf("kerntune - %s profile", a.Profile)) + "\n" +
		tableMutedStyle.Render(a.Profile.Description()) + "\n" +
		tableMutedStyle.Render(HardwareSummary(a))
	w.WriteString(tableHeaderBox.Render(header))
	w.WriteByte('\n')

	var subsystem string
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range a.Entries {
		prefix, _, _ := strings.Cut(string(e.Key), ".")
		if prefix != subsystem {
			if subsystem != "" {
				fmt.Fprintln(tw)
			}
			subsystem = prefix
			fmt.Fprintf(tw, "%s\n", tableSubsystemStyle.Render(subsystem))
		}
		fmt.Fprintf(tw, "  %s\t%s\n", e.Key, e.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", tableMutedStyle.Render(
		fmt.Sprintf("%d parameters | apply with: sysctl --system", len(a.Entries))))
	return nil
}

func init() {
	Register("table", func() Formatter {
		return &TableFormatter{}
	})
}

// Ensure TableFormatter implements Formatter.
var _ Formatter = (*TableFormatter)(nil)
