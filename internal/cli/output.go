package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be text or json)", format)
	}
}

// renderTable writes rows below header. Nothing but the empty message is
// written when there are no rows.
func renderTable(w io.Writer, header table.Row, rows []table.Row, empty string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, empty)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// styles colour text output when w is a terminal and leave it plain otherwise.
type styles struct {
	project  lipgloss.Style
	detail   lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		project:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		detail:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#666666")).Faint(true),
		selected: r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
	}
}
