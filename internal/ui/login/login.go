// Package login implements the sign-in screen shown while no session exists.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prismlabs/prism-tui/internal/ui/styles"
)

// SubmitMsg carries the entered credentials up to the application model.
type SubmitMsg struct {
	Email            string
	Password         string
	OrganizationName string
	Signup           bool
}

// field indices into the inputs slice.
const (
	fieldEmail = iota
	fieldPassword
	fieldOrganization
)

// Model is the login/signup form.
type Model struct {
	inputs  []textinput.Model
	focused int

	// signup switches the form between sign-in and create-organization.
	signup bool
	busy   bool
	err    error

	width  int
	height int
}

// New creates an empty login form with the email field focused.
func New() Model {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	org := textinput.New()
	org.Placeholder = "organization name"
	org.CharLimit = 128
	org.Width = 40

	return Model{
		inputs: []textinput.Model{email, password, org},
	}
}

// SetSize records the available terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetBusy toggles the submitting state.
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// SetError shows a failed attempt inline.
func (m *Model) SetError(err error) {
	m.err = err
}

// Reset clears the form for the next use.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.inputs[fieldEmail].Focus()
	m.focused = fieldEmail
	m.busy = false
	m.err = nil
}

// fieldCount is how many inputs the current mode shows.
func (m Model) fieldCount() int {
	if m.signup {
		return 3
	}
	return 2
}

// Update handles form input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	if m.busy {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.focusField((m.focused + 1) % m.fieldCount())
		return m, nil

	case "shift+tab", "up":
		m.focusField((m.focused - 1 + m.fieldCount()) % m.fieldCount())
		return m, nil

	case "ctrl+s":
		m.signup = !m.signup
		m.err = nil
		if !m.signup && m.focused == fieldOrganization {
			m.focusField(fieldEmail)
		}
		return m, nil

	case "enter":
		return m.submit()
	}

	return m.updateInputs(msg)
}

func (m *Model) focusField(idx int) {
	m.inputs[m.focused].Blur()
	m.focused = idx
	m.inputs[m.focused].Focus()
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	org := strings.TrimSpace(m.inputs[fieldOrganization].Value())

	// Enter on a non-final field advances instead of submitting.
	if m.focused < m.fieldCount()-1 {
		m.focusField(m.focused + 1)
		return m, nil
	}

	submit := SubmitMsg{
		Email:            email,
		Password:         password,
		OrganizationName: org,
		Signup:           m.signup,
	}
	return m, func() tea.Msg { return submit }
}

// View renders the centered login card.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to Prism"
	action := "create an organization"
	if m.signup {
		title = "Create your organization"
		action = "sign in"
	}

	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Email", fieldEmail))
	b.WriteString("\n")
	b.WriteString(m.renderField("Password", fieldPassword))
	if m.signup {
		b.WriteString("\n")
		b.WriteString(m.renderField("Organization", fieldOrganization))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.ErrorTextStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(styles.HelpStyle.Render("Signing in..."))
	} else {
		b.WriteString(styles.HelpStyle.Render("enter submit • tab next field • ctrl+s " + action))
	}

	card := styles.CardStyle.BorderForeground(styles.Primary).Render(b.String())

	if m.width > 0 && m.height > 0 {
		return styles.CenterBoth(card, m.width, m.height)
	}
	return card
}

func (m Model) renderField(label string, idx int) string {
	style := styles.BlurredStyle
	if m.focused == idx {
		style = styles.FocusedStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(label),
		m.inputs[idx].View(),
	)
}
