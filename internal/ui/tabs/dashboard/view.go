package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/prismlabs/prism-tui/internal/analytics"
	"github.com/prismlabs/prism-tui/internal/ui/components"
	"github.com/prismlabs/prism-tui/internal/ui/palette"
	"github.com/prismlabs/prism-tui/internal/ui/styles"
)

// View renders the dashboard tab.
func (m *Model) View() string {
	dash := m.state.GetDashboard()

	if dash == nil {
		if m.state.Loading.Dashboard || m.state.IsInitialLoading() {
			return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
		}
		return styles.CenterBoth(
			styles.HelpStyle.Render("No usage data yet. Press r to refresh."),
			m.width, m.height,
		)
	}

	sections := []string{
		m.renderTitle(dash),
		m.renderHero(dash),
		m.renderKPIs(dash),
		m.renderBudget(dash),
		m.renderChart(dash),
		m.renderBreakdowns(dash),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle(dash *analytics.Dashboard) string {
	title := styles.TitleStyle.Render("Usage Analytics")
	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("Last %s • p to change period", dash.Period.Label()),
	)

	rows := []string{title, subtitle}
	if dash.Cached {
		rows = append(rows, styles.WarningTextStyle.Render(
			fmt.Sprintf("Offline — cached data from %s", dash.CachedAt.Local().Format("Jan 02 15:04")),
		))
	}
	rows = append(rows, "")

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderHero(dash *analytics.Dashboard) string {
	amount := styles.SuccessTextStyle.Bold(true).Render(formatMoney(dash.EstimatedSavings))
	label := styles.HelpStyle.Render("estimated savings vs direct API pricing")

	return styles.HeroCardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Estimated Savings"),
			amount+" "+label,
		),
	)
}

func (m *Model) renderKPIs(dash *analytics.Dashboard) string {
	cardWidth := max((m.width-12)/4, 18)

	cards := []string{
		m.renderKPICard("Total Spend", formatMoney(dash.Summary.TotalCostUSD), cardWidth),
		m.renderKPICard("Requests", fmt.Sprintf("%d", dash.Summary.TotalRequests), cardWidth),
		m.renderKPICard("Avg Cost/Req", fmt.Sprintf("$%.4f", dash.AvgCostPerRequest), cardWidth),
		m.renderKPICard("Avg Latency", fmt.Sprintf("%.0f ms", dash.Summary.AvgLatencyMs), cardWidth),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderKPICard(label, value string, width int) string {
	return styles.CardStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.HelpStyle.Render(label),
			lipgloss.NewStyle().Bold(true).Render(value),
		),
	)
}

func (m *Model) renderBudget(dash *analytics.Dashboard) string {
	barWidth := max(m.width-10, 30)
	bar := components.BudgetBar(dash.BudgetPercent, "Budget", barWidth)
	return lipgloss.JoinVertical(lipgloss.Left, bar, "")
}

func (m *Model) renderChart(dash *analytics.Dashboard) string {
	series := dash.CostSeries()

	chartWidth := max(m.width-16, 30)
	chart := components.RenderLineChart(series, chartWidth, 8, "Cost over time (USD)")

	return styles.CardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Spend Trend"),
			chart,
		),
	)
}

func (m *Model) renderBreakdowns(dash *analytics.Dashboard) string {
	halfWidth := max((m.width-10)/2, 30)

	byModel := m.renderModelBreakdown(dash, halfWidth)
	byKey := m.renderKeyBreakdown(dash, halfWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, byModel, byKey)
}

func (m *Model) renderModelBreakdown(dash *analytics.Dashboard, width int) string {
	labels := make([]string, len(dash.ByModel))
	shares := make([]float64, len(dash.ByModel))
	colors := make([]lipgloss.Color, len(dash.ByModel))
	for i, row := range dash.ByModel {
		labels[i] = row.Model
		shares[i] = row.Share
		colors[i] = lipgloss.Color(palette.Resolve(row.Model, i).Fill)
	}

	bars := components.RenderBreakdownBars(labels, shares, colors, width-6)

	return styles.CardStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Spend by Model"),
			bars,
		),
	)
}

func (m *Model) renderKeyBreakdown(dash *analytics.Dashboard, width int) string {
	labels := make([]string, len(dash.ByKey))
	shares := make([]float64, len(dash.ByKey))
	colors := make([]lipgloss.Color, len(dash.ByKey))
	for i, row := range dash.ByKey {
		label := row.Label
		if label == "" {
			label = row.KeyPrefix
		}
		labels[i] = label
		shares[i] = row.Share
		colors[i] = keyColor(row, i)
	}

	bars := components.RenderBreakdownBars(labels, shares, colors, width-6)

	return styles.CardStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Spend by Key"),
			bars,
		),
	)
}

// keyColor resolves the bar color for a key row. Colors follow the stored
// label: an unlabeled key takes the positional palette, never a department
// match against its random prefix.
func keyColor(row analytics.KeyShare, index int) lipgloss.Color {
	return lipgloss.Color(palette.Resolve(row.Label, index).Fill)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
