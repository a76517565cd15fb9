package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/apl-pkg/aplreg/pkg/coverage"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// MissingPickerModel - Interactive missing-package selection
// =============================================================================

// MissingPickerModel is the bubbletea model for choosing which missing
// packages to import.
type MissingPickerModel struct {
	Entries   []coverage.Entry
	Cursor    int
	Checked   map[int]bool
	Confirmed bool
	Height    int
	Offset    int
}

// NewMissingPickerModel creates a picker over the missing entries.
func NewMissingPickerModel(entries []coverage.Entry) MissingPickerModel {
	return MissingPickerModel{
		Entries: entries,
		Checked: make(map[int]bool),
		Height:  15,
	}
}

func (m MissingPickerModel) Init() tea.Cmd {
	return nil
}

func (m MissingPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			check := m.checkedCount() != len(m.Entries)
			for i := range m.Entries {
				m.Checked[i] = check
			}
		case "enter":
			if m.checkedCount() > 0 {
				m.Confirmed = true
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MissingPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Packages to Import"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ import  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		checkbox := "[ ]"
		if m.Checked[i] {
			checkbox = "[x]"
		}

		rows = append(rows, []string{cursor, checkbox, e.Name, fmt.Sprintf("%d", e.Installs)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Package", "Installs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor
			isChecked := m.Checked[actualIdx]

			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}

			switch {
			case isCurrent && isChecked:
				return base.Foreground(colorGreen).Bold(true)
			case isCurrent:
				return base.Foreground(colorCyan).Bold(true)
			case isChecked:
				return base.Foreground(colorGreen)
			default:
				return base
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] · %d selected", m.Cursor+1, len(m.Entries), m.checkedCount())))

	return b.String()
}

// Selected returns the chosen package names in ranking order, or nil when
// the picker was dismissed without confirming.
func (m MissingPickerModel) Selected() []string {
	if !m.Confirmed {
		return nil
	}
	var names []string
	for i, e := range m.Entries {
		if m.Checked[i] {
			names = append(names, e.Name)
		}
	}
	return names
}

func (m MissingPickerModel) checkedCount() int {
	count := 0
	for _, checked := range m.Checked {
		if checked {
			count++
		}
	}
	return count
}

// =============================================================================
// Picker-driven import
// =============================================================================

// pickAndImport shows the picker for the report's missing packages and
// imports the chosen ones.
func (c *CLI) pickAndImport(ctx context.Context, report coverage.Report, registryDir string) error {
	missing := make([]coverage.Entry, 0, len(report.Missing))
	for _, e := range report.Entries {
		if !e.Present {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		printSuccess("All %d packages have registry definitions", report.Total)
		return nil
	}

	p := tea.NewProgram(NewMissingPickerModel(missing))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(MissingPickerModel)
	if !ok || len(fm.Selected()) == 0 {
		printDetail("No selection made")
		return nil
	}

	printNewline()
	return c.runImport(ctx, fm.Selected(), registryDir, false)
}
