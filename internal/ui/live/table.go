package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the initial table layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Case", Width: 32},
		{Title: "Status", Width: 10},
		{Title: "Metrics", Width: 8},
		{Title: "Time", Width: 8},
	}
}

// columnsForWidth widens the case column to fill the terminal.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for _, column := range columns {
		if column.Title != "Case" {
			fixed += column.Width
		}
	}
	caseWidth := width - fixed - len(columns)*2
	if caseWidth < 16 {
		caseWidth = 16
	}
	for i := range columns {
		if columns[i].Title == "Case" {
			columns[i].Width = caseWidth
		}
	}
	return columns
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			fmtInt(row.Index),
			row.ID,
			formatStatus(row, noColor),
			formatMetrics(row),
			formatRowDuration(row, now),
		})
	}
	return rows
}
