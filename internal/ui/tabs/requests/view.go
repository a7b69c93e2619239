package requests

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/ui/components"
	"github.com/prismlabs/prism-tui/internal/ui/styles"
)

// View renders the request log tab.
func (m *Model) View() string {
	page := m.state.GetRequests()

	if page == nil {
		if m.state.Loading.Requests || m.state.IsInitialLoading() {
			return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
		}
		return styles.CenterBoth(
			styles.HelpStyle.Render("No requests yet."),
			m.width, m.height,
		)
	}

	sections := []string{
		m.renderHeader(page),
		m.renderTable(page),
		m.renderPager(page),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderHeader(page *models.RequestLogPage) string {
	title := styles.TitleStyle.Render("Request Log")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d requests total", page.Total))
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "2xx", Color: styles.Success},
		{Label: "4xx", Color: styles.Warning},
		{Label: "5xx", Color: styles.Error},
	})
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, legend, "")
}

func (m *Model) renderTable(page *models.RequestLogPage) string {
	if len(page.Data) == 0 {
		return styles.HelpStyle.Render("This page is empty.")
	}

	header := fmt.Sprintf("%-17s %-26s %-6s %9s %9s %7s %8s",
		"TIME", "MODEL", "STATUS", "IN", "OUT", "MS", "COST")

	rows := []string{styles.TableHeaderStyle.Render(header)}

	for _, entry := range page.Data {
		model := entry.Model
		if len(model) > 26 {
			model = model[:23] + "..."
		}

		status := styles.GetStatusCodeStyle(entry.StatusCode).
			Render(fmt.Sprintf("%-6d", entry.StatusCode))

		row := fmt.Sprintf("%-17s %-26s %s %9d %9d %7d %8s",
			entry.CreatedAt.Local().Format("Jan 02 15:04:05"),
			model,
			status,
			entry.InputTokens,
			entry.OutputTokens,
			entry.LatencyMs,
			fmt.Sprintf("$%.4f", entry.CostUSD),
		)
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderPager(page *models.RequestLogPage) string {
	totalPages := m.totalPages(page.Total, page.Limit)
	pager := fmt.Sprintf("Page %d of %d", page.Page, totalPages)

	hints := []string{}
	if page.Page > 1 {
		hints = append(hints, "← prev")
	}
	if page.Page < totalPages {
		hints = append(hints, "→ next")
	}

	line := pager
	if len(hints) > 0 {
		line += "  " + strings.Join(hints, "  ")
	}

	return "\n" + styles.HelpStyle.Render(line)
}
