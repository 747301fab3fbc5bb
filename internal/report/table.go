package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/xab-mack/authsurface/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

// RenderText renders the per-contract state variable and function tables for
// the terminal, mirroring the CSV/Markdown column layout.
func RenderText(reports []model.ContractReport) string {
	var b strings.Builder
	for _, rep := range reports {
		fmt.Fprintf(&b, "\nContract %s\n", rep.Contract)

		b.WriteString("\n=== State Variables ===\n")
		vars := newTable("Variable Name", "Type", "Visibility", "Location")
		for _, v := range rep.StateVariables {
			vars.Row(v.Name, v.Type, v.Visibility, v.Location)
		}
		b.WriteString(vars.String())
		b.WriteString("\n")

		b.WriteString("\n=== Functions and State Variable Writes ===\n")
		fns := newTable("Function", "State Variables Written", "Conditions on msg.sender")
		for _, fr := range rep.Functions {
			fns.Row(fr.Function, SetCell(fr.StateVariablesWritten), SetCell(fr.CallerConditions))
		}
		b.WriteString(fns.String())
		b.WriteString("\n")
	}
	return b.String()
}
