package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/tui/components/habits"
	"github.com/julianstephens/tracklit/internal/tui/components/moods"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Approximate height for tabs, status and help
		listHeight := msg.Height - 5

		h, v := docStyle.GetFrameSize()
		m.moodsModel.SetSize(msg.Width-h, listHeight-v)
		m.habitsModel.SetSize(msg.Width-h, listHeight-v)
		return m, nil

	case moodsLoadedMsg:
		m.moodsModel.SetMoods(msg.entries, msg.summary)
		return m, nil

	case habitsLoadedMsg:
		m.habitsModel.SetHabits(msg.habits, msg.today)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		m.err = nil
		return m, m.refresh()

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateAddMood, StateAddHabit:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			// Only two views, so both directions swap
			if m.state == StateMoods {
				m.state = StateHabits
			} else {
				m.state = StateMoods
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			m.err = nil
			return m, m.refresh()
		}
	}

	switch msg := msg.(type) {
	case moods.AddMoodMsg:
		m.moodForm = &MoodFormModel{}
		m.form = NewMoodForm(m.moodForm)
		m.state = StateAddMood
		return m, m.form.Init()

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		return m, m.toggleHabit(msg.ID)

	case habits.DeleteHabitMsg:
		m.habitToDelete = &msg
		m.state = StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateMoods:
		m.moodsModel, cmd = m.moodsModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) refresh() tea.Cmd {
	return tea.Batch(m.loadMoods(), m.loadHabits())
}

func (m Model) filtering() bool {
	switch m.state {
	case StateMoods:
		return m.moodsModel.Filtering()
	case StateHabits:
		return m.habitsModel.Filtering()
	}
	return false
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	back := StateMoods
	if m.state == StateAddHabit {
		back = StateHabits
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = back
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = back
		if back == StateMoods {
			return m, m.createMood(m.moodForm.Input())
		}
		return m, m.createHabit(strings.TrimSpace(m.habitForm.Name))
	case huh.StateAborted:
		m.state = back
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.habitToDelete == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		target := *m.habitToDelete
		m.habitToDelete = nil
		m.state = StateHabits
		return m, m.deleteHabit(target)
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDelete = nil
		m.state = StateHabits
	}
	return m, nil
}
