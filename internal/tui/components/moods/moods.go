package moods

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracklit/internal/models"
)

type AddMoodMsg struct{}

type Item struct {
	Entry models.MoodEntry
	loc   *time.Location
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s (%d)", i.Entry.MoodEmoji, i.Entry.MoodLabel, i.Entry.MoodValue)
}

func (i Item) Description() string {
	desc := i.Entry.Date.In(i.loc).Format("Mon Jan 2 15:04")
	if i.Entry.Notes != "" {
		desc += ": " + i.Entry.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.MoodLabel + " " + i.Entry.Notes }

type KeyMap struct {
	Add key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log mood"),
		),
	}
}

var summaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	PaddingLeft(2)

type Model struct {
	list    list.Model
	keys    KeyMap
	loc     *time.Location
	summary models.MoodSummary
}

func New(entries []models.MoodEntry, summary models.MoodSummary, loc *time.Location, width, height int) Model {
	if loc == nil {
		loc = time.UTC
	}
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Moods"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	m := Model{list: l, keys: keys, loc: loc}
	m.SetMoods(entries, summary)
	return m
}

func (m *Model) SetMoods(entries []models.MoodEntry, summary models.MoodSummary) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e, loc: m.loc}
	}
	m.list.SetItems(items)
	m.summary = summary
}

func (m Model) Summary() models.MoodSummary {
	return m.summary
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddMoodMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := summaryStyle.Render(fmt.Sprintf("Last %d days: no entries", m.summary.WindowDays))
	if m.summary.Count > 0 {
		header = summaryStyle.Render(fmt.Sprintf("Last %d days: %d entries, average %.2f (low %d, high %d)",
			m.summary.WindowDays, m.summary.Count, m.summary.Average, m.summary.Min, m.summary.Max))
	}

	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return header + "\n\n  No moods logged yet.\n  Press 'a' to log one."
	}
	return header + "\n" + m.list.View()
}

// SetSize reserves a line for the summary header
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-1)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
