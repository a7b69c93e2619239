package login

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		_ = cmd
	}
	return m
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return m.Update(msg)
}

func TestSubmitLoginForm(t *testing.T) {
	m := New()
	m = typeString(t, m, "ops@example.com")
	m, _ = press(m, "tab")
	m = typeString(t, m, "secret")

	m, cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("enter on the last field should produce a submit command")
	}

	msg := cmd()
	submit, ok := msg.(SubmitMsg)
	if !ok {
		t.Fatalf("command produced %T, want SubmitMsg", msg)
	}
	if submit.Email != "ops@example.com" {
		t.Errorf("Email = %q", submit.Email)
	}
	if submit.Password != "secret" {
		t.Errorf("Password = %q", submit.Password)
	}
	if submit.Signup {
		t.Error("login submit flagged as signup")
	}
}

func TestEnterAdvancesToNextField(t *testing.T) {
	m := New()
	m = typeString(t, m, "ops@example.com")

	m, cmd := press(m, "enter")
	if cmd != nil {
		t.Fatal("enter on the email field should advance, not submit")
	}
	if m.focused != fieldPassword {
		t.Errorf("focused = %d, want password field", m.focused)
	}
}

func TestSignupToggleAddsOrganizationField(t *testing.T) {
	m := New()

	m, _ = press(m, "ctrl+s")
	if !m.signup {
		t.Fatal("ctrl+s should switch to signup mode")
	}
	if m.fieldCount() != 3 {
		t.Errorf("fieldCount = %d, want 3", m.fieldCount())
	}

	view := m.View()
	if !strings.Contains(view, "Organization") {
		t.Error("signup view missing organization field")
	}
}

func TestSignupSubmitCarriesOrganization(t *testing.T) {
	m := New()
	m, _ = press(m, "ctrl+s")

	m = typeString(t, m, "founder@example.com")
	m, _ = press(m, "tab")
	m = typeString(t, m, "secret")
	m, _ = press(m, "tab")
	m = typeString(t, m, "Example Org")

	m, cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	submit := cmd().(SubmitMsg)
	if !submit.Signup {
		t.Error("Signup flag not set")
	}
	if submit.OrganizationName != "Example Org" {
		t.Errorf("OrganizationName = %q", submit.OrganizationName)
	}
}

func TestBusyIgnoresInput(t *testing.T) {
	m := New()
	m.SetBusy(true)

	m, cmd := press(m, "enter")
	if cmd != nil {
		t.Error("busy form should not submit")
	}

	m = typeString(t, m, "x")
	if m.inputs[fieldEmail].Value() != "" {
		t.Error("busy form should not accept input")
	}
}

func TestErrorShownInView(t *testing.T) {
	m := New()
	m.SetError(errors.New("invalid credentials"))

	if !strings.Contains(m.View(), "invalid credentials") {
		t.Error("view missing error message")
	}
}

func TestResetClearsForm(t *testing.T) {
	m := New()
	m = typeString(t, m, "ops@example.com")
	m.SetError(errors.New("boom"))
	m.SetBusy(true)

	m.Reset()

	if m.inputs[fieldEmail].Value() != "" {
		t.Error("email not cleared")
	}
	if m.err != nil || m.busy {
		t.Error("error/busy state not cleared")
	}
	if m.focused != fieldEmail {
		t.Error("focus not reset to email")
	}
}
