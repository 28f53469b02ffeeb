package display

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/ruleconv/internal/keymap"
)

// PrintKeyMap prints the key map as a table of original name, alias, label
// and group. The header row is styled; data rows are plain so the output
// stays greppable.
func PrintKeyMap(entries []keymap.Entry, writer io.Writer) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultColors.Green)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText)

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ORIGINAL\tALIAS\tLABEL\tGROUP")
	for _, e := range entries {
		label, group := keymap.Describe(e.Alias)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Original, e.Alias, orDash(label), orDash(group))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d columns mapped; unmapped columns keep their names", len(entries))
	_, err := fmt.Fprintln(writer, mutedStyle.Render(summary))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
