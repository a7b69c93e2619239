// Package keys implements the proxy key management tab.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismlabs/prism-tui/internal/app"
	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/ui/components"
)

// mode is which of the tab's screens is active.
type mode int

const (
	modeList mode = iota
	modeCreate
	modeReveal
)

// form field indices.
const (
	fieldLabel = iota
	fieldProviderKey
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Delete key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new key")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete key")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// Model represents the keys tab state.
type Model struct {
	state   *app.State
	spinner components.LoadingSpinner
	keys    keyMap

	mode     mode
	selected int
	inputs   []textinput.Model
	focused  int

	// revealed holds a freshly created key; the plaintext is shown once
	// and discarded when the user leaves the reveal screen.
	revealed *models.CreatedKey

	width  int
	height int
}

// New creates a new keys tab model.
func New(state *app.State) *Model {
	label := textinput.New()
	label.Placeholder = "what is this key for?"
	label.CharLimit = 128
	label.Width = 40
	label.Focus()

	provider := textinput.New()
	provider.Placeholder = "sk-..."
	provider.CharLimit = 256
	provider.Width = 40
	provider.EchoMode = textinput.EchoPassword
	provider.EchoCharacter = '*'

	return &Model{
		state:   state,
		spinner: components.NewSpinner("Loading keys..."),
		keys:    defaultKeyMap(),
		inputs:  []textinput.Model{label, provider},
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.KeyCreatedMsg:
		if msg.Error == nil && msg.Key != nil {
			m.revealed = msg.Key
			m.mode = modeReveal
		}
		return m, nil

	case app.KeysLoadedMsg:
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.mode == modeCreate {
		return m, m.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeCreate:
		return m.handleCreateKeys(msg)
	case modeReveal:
		if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Submit) {
			m.revealed = nil
			m.mode = modeList
		}
		return nil
	default:
		return m.handleListKeys(msg)
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	keyCount := len(m.state.GetKeys())

	switch {
	case key.Matches(msg, m.keys.Up):
		if keyCount > 0 {
			m.selected = (m.selected - 1 + keyCount) % keyCount
		}
	case key.Matches(msg, m.keys.Down):
		if keyCount > 0 {
			m.selected = (m.selected + 1) % keyCount
		}
	case key.Matches(msg, m.keys.New):
		m.openCreateForm()
	case key.Matches(msg, m.keys.Delete):
		if keyCount > 0 {
			id := m.state.GetKeys()[m.selected].ID
			return func() tea.Msg { return app.DeleteKeyMsg{ID: id} }
		}
	}
	return nil
}

func (m *Model) handleCreateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		return nil

	case key.Matches(msg, m.keys.Submit):
		if m.focused < len(m.inputs)-1 {
			m.focusField(m.focused + 1)
			return nil
		}
		label := strings.TrimSpace(m.inputs[fieldLabel].Value())
		providerKey := strings.TrimSpace(m.inputs[fieldProviderKey].Value())
		if providerKey == "" {
			return nil
		}
		m.mode = modeList
		return func() tea.Msg {
			return app.CreateKeyMsg{ProviderAPIKey: providerKey, Label: label}
		}

	case msg.String() == "tab":
		m.focusField((m.focused + 1) % len(m.inputs))
		return nil
	}

	return m.updateInputs(msg)
}

func (m *Model) openCreateForm() {
	m.mode = modeCreate
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focused = fieldLabel
	m.inputs[fieldLabel].Focus()
}

func (m *Model) focusField(idx int) {
	m.inputs[m.focused].Blur()
	m.focused = idx
	m.inputs[m.focused].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) clampSelection() {
	keyCount := len(m.state.GetKeys())
	if m.selected >= keyCount {
		m.selected = max(keyCount-1, 0)
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.New, m.keys.Delete, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.New, m.keys.Delete},
		{m.keys.Submit, m.keys.Cancel},
	}
}
