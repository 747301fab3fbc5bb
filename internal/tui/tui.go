package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xab-mack/authsurface/internal/model"
	"github.com/xab-mack/authsurface/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	tableBorder = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder())
)

type modelT struct {
	reports []model.ContractReport
	cursor  int
	rows    table.Model
}

func initialModel(reports []model.ContractReport) modelT {
	m := modelT{reports: reports}
	m.rows = table.New(
		table.WithColumns([]table.Column{
			{Title: "Function", Width: 24},
			{Title: "State Variables Written", Width: 34},
			{Title: "Conditions on msg.sender", Width: 44},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	m.syncRows()
	return m
}

func (m *modelT) syncRows() {
	var rows []table.Row
	if m.cursor < len(m.reports) {
		for _, fr := range m.reports[m.cursor].Functions {
			rows = append(rows, table.Row{
				fr.Function,
				report.SetCell(fr.StateVariablesWritten),
				report.SetCell(fr.CallerConditions),
			})
		}
	}
	m.rows.SetRows(rows)
	m.rows.GotoTop()
}

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
				m.syncRows()
			}
			return m, nil
		case "right", "l", "tab":
			if m.cursor+1 < len(m.reports) {
				m.cursor++
				m.syncRows()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m modelT) View() string {
	if len(m.reports) == 0 {
		return "No contracts found.\n"
	}
	rep := m.reports[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n",
		titleStyle.Render("Contract "+rep.Contract),
		dimStyle.Render(fmt.Sprintf("(%d/%d, ←/→ to switch, q to quit)", m.cursor+1, len(m.reports))))
	b.WriteString(tableBorder.Render(m.rows.View()))
	b.WriteString("\n")
	return b.String()
}

// Run launches the interactive browser over the per-contract results.
func Run(reports []model.ContractReport) error {
	p := tea.NewProgram(initialModel(reports))
	_, err := p.Run()
	return err
}
