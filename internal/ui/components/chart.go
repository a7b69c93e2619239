// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/prismlabs/prism-tui/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)

	return graph
}

// RenderBreakdownBars creates a horizontal bar chart with a share column,
// one row per breakdown entry. Colors follow the row order.
func RenderBreakdownBars(labels []string, shares []float64, colors []lipgloss.Color, width int) string {
	if len(labels) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}

	barWidth := width - maxLabelLen - 12
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, label := range labels {
		share := 0.0
		if i < len(shares) {
			share = shares[i]
		}

		barLen := int(share / 100 * float64(barWidth))
		if barLen > barWidth {
			barLen = barWidth
		}
		if barLen < 0 {
			barLen = 0
		}

		barStyle := lipgloss.NewStyle().Foreground(styles.Primary)
		if i < len(colors) {
			barStyle = lipgloss.NewStyle().Foreground(colors[i])
		}

		bar := barStyle.Render(strings.Repeat("█", barLen)) +
			lipgloss.NewStyle().Foreground(styles.BgLight).Render(strings.Repeat("░", barWidth-barLen))

		paddedLabel := fmt.Sprintf("%-*s", maxLabelLen, label)
		shareStr := fmt.Sprintf("%5.1f%%", share)

		lines = append(lines, paddedLabel+" "+bar+" "+shareStr)
	}

	return strings.Join(lines, "\n")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		idx := int(float64(i) * step)
		val := values[idx]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		if normalized >= len(sparkChars) {
			normalized = len(sparkChars) - 1
		}
		if normalized < 0 {
			normalized = 0
		}
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
