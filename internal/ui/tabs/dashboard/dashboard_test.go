package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prismlabs/prism-tui/internal/analytics"
	"github.com/prismlabs/prism-tui/internal/app"
	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/ui/palette"
)

func newLoadedState() *app.State {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.RequestPeriod(models.Period30d)
	state.SetDashboard(&analytics.Dashboard{
		Period: models.Period30d,
		Summary: models.Summary{
			TotalRequests: 1200,
			TotalCostUSD:  250,
			AvgLatencyMs:  420,
			Period:        models.Period30d,
		},
		ByModel: []analytics.ModelShare{
			{ModelBreakdownRow: models.ModelBreakdownRow{Model: "claude-sonnet", CostUSD: 175}, Share: 70},
			{ModelBreakdownRow: models.ModelBreakdownRow{Model: "claude-haiku", CostUSD: 75}, Share: 30},
		},
		ByKey: []analytics.KeyShare{
			{KeyBreakdownRow: models.KeyBreakdownRow{KeyPrefix: "pk_abc", Label: "engineering"}, Share: 100},
		},
		EstimatedSavings:  1250,
		BudgetPercent:     2,
		AvgCostPerRequest: 0.2083,
	})
	return state
}

func TestViewWithDashboard(t *testing.T) {
	m := New(newLoadedState())
	m.SetSize(120, 40)

	view := m.View()

	for _, want := range []string{
		"Usage Analytics",
		"$1250.00",
		"$250.00",
		"1200",
		"$0.2083",
		"420 ms",
		"claude-sonnet",
		"engineering",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewMarksCachedDashboard(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.RequestPeriod(models.Period30d)
	state.SetDashboard(&analytics.Dashboard{
		Period: models.Period30d,
		Summary: models.Summary{
			TotalRequests: 10,
			TotalCostUSD:  100,
			Period:        models.Period30d,
		},
		Cached:   true,
		CachedAt: time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC),
	})

	m := New(state)
	m.SetSize(120, 40)

	if !strings.Contains(m.View(), "cached data from") {
		t.Error("view should flag cached data")
	}
}

func TestKeyColorIgnoresPrefixForUnlabeledKeys(t *testing.T) {
	// A random prefix may contain a department keyword; only the stored
	// label participates in color matching.
	unlabeled := analytics.KeyShare{
		KeyBreakdownRow: models.KeyBreakdownRow{KeyPrefix: "pk_hr4f2a"},
	}
	labeled := analytics.KeyShare{
		KeyBreakdownRow: models.KeyBreakdownRow{KeyPrefix: "pk_hr4f2a", Label: "hr"},
	}

	if got, want := keyColor(unlabeled, 0), lipgloss.Color(palette.Resolve("", 0).Fill); got != want {
		t.Errorf("unlabeled key color = %v, want positional palette %v", got, want)
	}
	if got, want := keyColor(labeled, 0), lipgloss.Color(palette.Resolve("hr", 0).Fill); got != want {
		t.Errorf("labeled key color = %v, want department color %v", got, want)
	}
	if keyColor(unlabeled, 0) == lipgloss.Color(palette.Resolve("hr", 0).Fill) {
		t.Error("unlabeled key must not pick up department colors from its prefix")
	}
}

func TestViewEmptyState(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state)
	m.SetSize(80, 24)

	if !strings.Contains(m.View(), "No usage data") {
		t.Error("empty view missing placeholder text")
	}
}

func TestPeriodCycling(t *testing.T) {
	state := newLoadedState()
	m := New(state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if cmd == nil {
		t.Fatal("p should emit a period change")
	}

	msg, ok := cmd().(app.PeriodChangedMsg)
	if !ok {
		t.Fatalf("got %T, want PeriodChangedMsg", cmd())
	}
	if msg.Period != models.Period90d {
		t.Errorf("Period = %v, want %v after 30d", msg.Period, models.Period90d)
	}
}

func TestPeriodCyclingBackward(t *testing.T) {
	state := newLoadedState()
	m := New(state)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'P'}})
	if cmd == nil {
		t.Fatal("P should emit a period change")
	}

	msg := cmd().(app.PeriodChangedMsg)
	if msg.Period != models.Period7d {
		t.Errorf("Period = %v, want %v before 30d", msg.Period, models.Period7d)
	}
}

func TestShortHelp(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp should list bindings")
	}
}
