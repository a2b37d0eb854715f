package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPrimary = lipgloss.Color("#00ff88")
	colorWarning = lipgloss.Color("#fbbf24")
	colorError   = lipgloss.Color("#ff4444")
	colorMuted   = lipgloss.Color("#737373")
	colorBorder  = lipgloss.Color("#404040")
)

var theme = struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorPrimary),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Header:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
	Cell:    lipgloss.NewStyle().Padding(0, 1),
}

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func renderTitle(msg string) string {
	return theme.Title.Render(msg)
}

func renderMeta(label, value string) string {
	return theme.Bold.Render(label) + " " + theme.Muted.Render(value)
}

func renderSuccess(msg string) string {
	return theme.Success.Render("[OK] " + msg)
}

func renderWarning(msg string) string {
	return theme.Warning.Render("[!] " + msg)
}

func renderError(msg string) string {
	return theme.Error.Render("[X] " + msg)
}

func renderEmpty(msg string) string {
	return theme.Muted.Render(msg)
}

// renderTable renders rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Header
			}
			return theme.Cell
		})

	return t.Render()
}
