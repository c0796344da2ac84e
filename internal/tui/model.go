package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tracklit/internal/models"
	"github.com/julianstephens/tracklit/internal/service"
	"github.com/julianstephens/tracklit/internal/tui/components/habits"
	"github.com/julianstephens/tracklit/internal/tui/components/moods"
)

type SessionState int

const (
	StateMoods SessionState = iota
	StateHabits
	StateAddMood
	StateAddHabit
	StateConfirmDelete
)

type MoodFormModel struct {
	Preset int
	Notes  string
}

type HabitFormModel struct {
	Name string
}

type Model struct {
	moodSvc       *service.MoodService
	habitSvc      *service.HabitService
	windowDays    int
	state         SessionState
	keys          KeyMap
	help          help.Model
	moodsModel    moods.Model
	habitsModel   habits.Model
	form          *huh.Form
	moodForm      *MoodFormModel
	habitForm     *HabitFormModel
	habitToDelete *habits.DeleteHabitMsg
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

// NewModel builds the dashboard; data is loaded by Init
func NewModel(moodSvc *service.MoodService, habitSvc *service.HabitService, loc *time.Location, windowDays int) Model {
	return Model{
		moodSvc:     moodSvc,
		habitSvc:    habitSvc,
		windowDays:  windowDays,
		state:       StateMoods,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		moodsModel:  moods.New(nil, models.MoodSummary{WindowDays: windowDays}, loc, 0, 0),
		habitsModel: habits.New(nil, habitSvc.Today(), 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateMoods:
		actions = []key.Binding{moods.DefaultKeyMap().Add}
	case StateHabits:
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Toggle, hk.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadMoods(), m.loadHabits())
}

type moodsLoadedMsg struct {
	entries []models.MoodEntry
	summary models.MoodSummary
}

type habitsLoadedMsg struct {
	habits []models.HabitView
	today  string
}

type statusMsg string

type errMsg struct {
	err error
}

func (m Model) loadMoods() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.moodSvc.List(context.Background(), m.windowDays)
		if err != nil {
			return errMsg{err}
		}
		return moodsLoadedMsg{entries: entries, summary: service.Summarize(entries, m.windowDays)}
	}
}

func (m Model) loadHabits() tea.Cmd {
	return func() tea.Msg {
		list, err := m.habitSvc.List(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return habitsLoadedMsg{habits: list, today: m.habitSvc.Today()}
	}
}

func (m Model) createMood(in models.MoodInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.moodSvc.Create(context.Background(), in); err != nil {
			return errMsg{err}
		}
		return statusMsg("Logged " + in.MoodEmoji + " " + in.MoodLabel)
	}
}

func (m Model) createHabit(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.habitSvc.Create(context.Background(), name); err != nil {
			return errMsg{err}
		}
		return statusMsg("Added habit " + name)
	}
}

func (m Model) toggleHabit(id int64) tea.Cmd {
	return func() tea.Msg {
		result, err := m.habitSvc.Toggle(context.Background(), id, "")
		if err != nil {
			return errMsg{err}
		}
		if result.Completed {
			return statusMsg("Marked done for " + result.Date)
		}
		return statusMsg("Unmarked for " + result.Date)
	}
}

func (m Model) deleteHabit(target habits.DeleteHabitMsg) tea.Cmd {
	return func() tea.Msg {
		if err := m.habitSvc.Delete(context.Background(), target.ID); err != nil {
			return errMsg{err}
		}
		return statusMsg("Deleted habit " + target.Name)
	}
}
