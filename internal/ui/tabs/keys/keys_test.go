package keys

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismlabs/prism-tui/internal/app"
	"github.com/prismlabs/prism-tui/internal/models"
)

func newStateWithKeys() *app.State {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetKeys([]models.ProxyKey{
		{ID: "k1", KeyPrefix: "pk_aaa", Label: "engineering", CreatedAt: time.Now()},
		{ID: "k2", KeyPrefix: "pk_bbb", Label: "marketing", CreatedAt: time.Now()},
	})
	return state
}

func pressRune(m *Model, r rune) (app.Tab, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestListViewShowsKeys(t *testing.T) {
	m := New(newStateWithKeys())
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "engineering") || !strings.Contains(view, "pk_aaa") {
		t.Errorf("list view missing key rows: %q", view)
	}
}

func TestSelectionMoves(t *testing.T) {
	m := New(newStateWithKeys())

	pressRune(m, 'j')
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
	pressRune(m, 'j')
	if m.selected != 0 {
		t.Errorf("selected should wrap to 0, got %d", m.selected)
	}
}

func TestDeleteEmitsMessage(t *testing.T) {
	m := New(newStateWithKeys())
	m.selected = 1

	_, cmd := pressRune(m, 'd')
	if cmd == nil {
		t.Fatal("d should emit a delete command")
	}

	msg, ok := cmd().(app.DeleteKeyMsg)
	if !ok {
		t.Fatalf("got %T, want DeleteKeyMsg", cmd())
	}
	if msg.ID != "k2" {
		t.Errorf("ID = %q, want k2", msg.ID)
	}
}

func TestCreateFlow(t *testing.T) {
	m := New(newStateWithKeys())
	m.SetSize(80, 24)

	pressRune(m, 'n')
	if m.mode != modeCreate {
		t.Fatal("n should open the create form")
	}

	for _, r := range "backend" {
		pressRune(m, r)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // advance to provider key
	for _, r := range "sk-test" {
		pressRune(m, r)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the last field should submit")
	}

	msg, ok := cmd().(app.CreateKeyMsg)
	if !ok {
		t.Fatalf("got %T, want CreateKeyMsg", cmd())
	}
	if msg.Label != "backend" || msg.ProviderAPIKey != "sk-test" {
		t.Errorf("unexpected submit: %+v", msg)
	}
	if m.mode != modeList {
		t.Error("submit should return to the list")
	}
}

func TestCreateRequiresProviderKey(t *testing.T) {
	m := New(newStateWithKeys())
	pressRune(m, 'n')

	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // skip label
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty provider key should not submit")
	}
}

func TestRevealShowsPlaintextOnce(t *testing.T) {
	m := New(newStateWithKeys())
	m.SetSize(80, 24)

	m.Update(app.KeyCreatedMsg{Key: &models.CreatedKey{
		ID:       "k3",
		ProxyKey: "prism-secret-xyz",
		Label:    "backend",
	}})

	if m.mode != modeReveal {
		t.Fatal("created key should open the reveal screen")
	}
	if !strings.Contains(m.View(), "prism-secret-xyz") {
		t.Error("reveal view missing plaintext key")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeList || m.revealed != nil {
		t.Error("esc should discard the plaintext and return to the list")
	}
}

func TestSelectionClampedAfterReload(t *testing.T) {
	state := newStateWithKeys()
	m := New(state)
	m.selected = 1

	state.SetKeys(state.GetKeys()[:1])
	m.Update(app.KeysLoadedMsg{Keys: state.GetKeys()})

	if m.selected != 0 {
		t.Errorf("selected = %d, want clamped to 0", m.selected)
	}
}
