package cli

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var (
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#586e75"))
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#268bd2")).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderTable renders rows under headers in a rounded-border table. Rows
// for which muted returns true are dimmed.
func RenderTable(headers []string, rows [][]string, muted func(row int) bool) string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return tableHeader
			}
			if muted != nil && muted(row) {
				return tableCell.Foreground(lipgloss.Color("#839496"))
			}
			return tableCell
		})

	for _, row := range rows {
		t = t.Row(row...)
	}
	return t.Render()
}
