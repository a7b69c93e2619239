package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	if s.View() == "" {
		t.Error("View returned empty")
	}
	if s.ViewWithLabel() == "" {
		t.Error("ViewWithLabel returned empty")
	}
	if s.Init() == nil {
		t.Error("Init should return command")
	}

	_, cmd := s.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Update should return command for tick")
	}

	if s.Tick() == nil {
		t.Error("Tick should return command")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if view == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	s := RenderLineChart(data, 20, 5, "Cost")
	if s == "" {
		t.Error("RenderLineChart returned empty")
	}
}

func TestRenderLineChart_Empty(t *testing.T) {
	s := RenderLineChart(nil, 20, 5, "Cost")
	if !strings.Contains(s, "No data") {
		t.Errorf("empty chart = %q, want no-data message", s)
	}
}

func TestRenderBreakdownBars(t *testing.T) {
	labels := []string{"claude-sonnet", "claude-haiku"}
	shares := []float64{70, 30}
	colors := []lipgloss.Color{"#8B5CF6", "#F59E0B"}

	s := RenderBreakdownBars(labels, shares, colors, 60)
	if s == "" {
		t.Error("RenderBreakdownBars returned empty")
	}
	if !strings.Contains(s, "70.0%") || !strings.Contains(s, "30.0%") {
		t.Errorf("breakdown missing share columns: %q", s)
	}
}

func TestRenderSparkline(t *testing.T) {
	data := []float64{1, 2, 3}
	s := RenderSparkline(data, 10)
	if s == "" {
		t.Error("RenderSparkline returned empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "engineering", Color: lipgloss.Color("#38BDF8")},
	}
	s := RenderLegend(items)
	if !strings.Contains(s, "engineering") {
		t.Errorf("legend missing label: %q", s)
	}
}

func TestBudgetBar(t *testing.T) {
	s := BudgetBar(42, "Budget", 60)
	if !strings.Contains(s, "42%") {
		t.Errorf("budget bar missing percent: %q", s)
	}
	if !strings.Contains(s, "Budget") {
		t.Errorf("budget bar missing label: %q", s)
	}
}

func TestRenderGradientBar_Bounds(t *testing.T) {
	if RenderGradientBar(50, 0) != "" {
		t.Error("zero width should render empty")
	}
	// Over- and under-range percentages clamp rather than panic.
	_ = RenderGradientBar(150, 10)
	_ = RenderGradientBar(-10, 10)
}
