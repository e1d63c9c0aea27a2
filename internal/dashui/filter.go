package dashui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yoni-ui/solar-challenge-week0/internal/model"
)

// The settings modal edits the country selection and granularity. Selections
// derive from the loaded countries, so an unknown country can never be picked.

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterCursor = 0
	m.filterGran = m.cfg.Granularity
	m.filterChecked = make(map[string]bool, len(m.available))
	for _, c := range m.cfg.Countries {
		m.filterChecked[c] = true
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	granRow := len(m.available)
	switch msg.String() {
	case "esc":
		m.filterMode = false
		return m, tea.ClearScreen
	case "enter":
		m.applyFilter()
		m.filterMode = false
		return m, tea.ClearScreen
	case "up", "k":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
		return m, nil
	case "down", "j":
		if m.filterCursor < granRow {
			m.filterCursor++
		}
		return m, nil
	case " ":
		if m.filterCursor < granRow {
			country := m.available[m.filterCursor]
			m.filterChecked[country] = !m.filterChecked[country]
		}
		return m, nil
	case "left", "h":
		if m.filterCursor == granRow {
			m.filterGran = prevGranularity(m.filterGran)
		}
		return m, nil
	case "right", "l":
		if m.filterCursor == granRow {
			m.filterGran = nextGranularity(m.filterGran)
		}
		return m, nil
	case "a":
		for _, c := range m.available {
			m.filterChecked[c] = true
		}
		return m, nil
	case "n":
		for _, c := range m.available {
			m.filterChecked[c] = false
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyFilter() {
	selected := make([]string, 0, len(m.available))
	for _, c := range m.available {
		if m.filterChecked[c] {
			selected = append(selected, c)
		}
	}
	m.cfg.Countries = selected
	m.cfg.Granularity = m.filterGran
	m.recompute()
}

func (m *Model) renderFilterModal() string {
	title := cardValueStyle.Render("Filter & Settings")
	lines := []string{title, ""}
	for i, country := range m.available {
		check := "[ ]"
		if m.filterChecked[country] {
			check = "[x]"
		}
		row := fmt.Sprintf("%s %s", check, country)
		if i == m.filterCursor {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	granRow := fmt.Sprintf("Granularity: %s", m.filterGran)
	if m.filterCursor == len(m.available) {
		granRow = cursorStyle.Render("> " + granRow + "  (left/right to change)")
	} else {
		granRow = "  " + granRow
	}
	lines = append(lines, "", granRow, "")
	lines = append(lines,
		headerStyle.Render("space: toggle  a: all  n: none"),
		headerStyle.Render("enter: apply  esc: cancel"),
	)
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func nextGranularity(g model.Granularity) model.Granularity {
	switch g {
	case model.Daily:
		return model.Weekly
	case model.Weekly:
		return model.Monthly
	default:
		return model.Daily
	}
}

func prevGranularity(g model.Granularity) model.Granularity {
	switch g {
	case model.Monthly:
		return model.Weekly
	case model.Weekly:
		return model.Daily
	default:
		return model.Monthly
	}
}

func modalWidth(width int) int {
	return maxInt(36, minInt(width-4, 60))
}
