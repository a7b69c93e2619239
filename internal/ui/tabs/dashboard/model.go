// Package dashboard renders the analytics overview tab.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismlabs/prism-tui/internal/app"
	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	NextPeriod key.Binding
	PrevPeriod key.Binding
	Refresh    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPeriod: key.NewBinding(
			key.WithKeys("p", "]"),
			key.WithHelp("p", "next period"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("P", "["),
			key.WithHelp("P", "prev period"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state    *app.State
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new dashboard model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading usage data..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextPeriod):
		return m.shiftPeriod(1)
	case key.Matches(msg, m.keys.PrevPeriod):
		return m.shiftPeriod(-1)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

// shiftPeriod moves through the period list and requests a refetch.
func (m *Model) shiftPeriod(delta int) tea.Cmd {
	current := m.state.RequestedPeriod()

	idx := 0
	for i, p := range models.Periods {
		if p == current {
			idx = i
			break
		}
	}

	next := models.Periods[(idx+delta+len(models.Periods))%len(models.Periods)]
	return func() tea.Msg {
		return app.PeriodChangedMsg{Period: next}
	}
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextPeriod,
		m.keys.PrevPeriod,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextPeriod, m.keys.PrevPeriod},
		{m.keys.Refresh},
	}
}
