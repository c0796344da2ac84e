package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tracklit/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID int64
}

type DeleteHabitMsg struct {
	ID   int64
	Name string
}

type Item struct {
	Habit     models.HabitView
	DoneToday bool
}

func (i Item) Title() string {
	if i.DoneToday {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("streak %d, %d%% complete", i.Habit.CurrentStreak, i.Habit.CompletionRate)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "m"), key.WithHelp("space", "toggle today")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.HabitView, today string, width, height int) Model {
	l := list.New(items(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

// items marks a habit done when its most recent completion is today
func items(habits []models.HabitView, today string) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{
			Habit:     h,
			DoneToday: len(h.Completions) > 0 && h.Completions[0] == today,
		}
	}
	return out
}

func (m *Model) SetHabits(habits []models.HabitView, today string) {
	m.list.SetItems(items(habits, today))
}

func (m Model) Items() []Item {
	var out []Item
	for _, it := range m.list.Items() {
		out = append(out, it.(Item))
	}
	return out
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if cmd := m.action(keyMsg); cmd != nil {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// action maps a key to a habit message for the parent model, or nil
func (m Model) action(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Add) {
		return func() tea.Msg { return AddHabitMsg{} }
	}
	selected, ok := m.list.SelectedItem().(Item)
	if !ok {
		return nil
	}
	h := selected.Habit
	switch {
	case key.Matches(msg, m.keys.Toggle):
		return func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
	case key.Matches(msg, m.keys.Delete):
		return func() tea.Msg { return DeleteHabitMsg{ID: h.ID, Name: h.Name} }
	}
	return nil
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
