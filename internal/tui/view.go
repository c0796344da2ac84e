package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateMoods:
		content = docStyle.Render(m.moodsModel.View())
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateAddMood, StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := 0
	if m.state == StateHabits || m.state == StateAddHabit || m.state == StateConfirmDelete {
		active = 1
	}

	var tabs []string
	for i, title := range []string{"Moods", "Habits"} {
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("✗ " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render("✓ " + m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.habitToDelete != nil {
		name = m.habitToDelete.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and all of its completions?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
