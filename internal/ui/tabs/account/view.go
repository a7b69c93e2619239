package account

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/prismlabs/prism-tui/internal/session"
	"github.com/prismlabs/prism-tui/internal/ui/styles"
	"github.com/prismlabs/prism-tui/internal/version"
)

// View renders the account tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderIdentityCard())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the account tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Account")
	subtitle := styles.HelpStyle.Render("Identity, configuration, and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// cardWidth clamps card width to a readable range.
func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 80 {
		w = 80
	}
	return w
}

// renderIdentityCard renders the signed-in identity.
func (m *Model) renderIdentityCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Identity"))
	rows = append(rows, "")

	sess := m.state.GetSession()
	if sess.Status == session.StatusAuthenticated && sess.Identity != nil {
		rows = append(rows, m.renderRow("Email", sess.Identity.Email))
		if sess.Identity.OrganizationName != "" {
			rows = append(rows, m.renderRow("Organization", sess.Identity.OrganizationName))
		}
		rows = append(rows, "")
		rows = append(rows, styles.HelpStyle.Render("Press 'L' to log out"))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Not signed in"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigCard renders the active configuration.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderRow("API Base URL", m.config.BaseURL))
		rows = append(rows, m.renderRow("Token File", m.config.TokenPath))
		rows = append(rows, m.renderRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderRow("Budget Cap", fmt.Sprintf("$%.2f", m.config.BudgetCap)))
		rows = append(rows, m.renderRow("Savings Factor", fmt.Sprintf("%.1fx", m.config.SavingsMultiplier)))
		rows = append(rows, m.renderRow("Refresh", m.config.RefreshInterval.String()))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRow renders a key-value row.
func (m *Model) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Prism"))
	rows = append(rows, "")

	rows = append(rows, m.renderRow("Version", version.Version()))
	rows = append(rows, m.renderRow("Git Commit", version.Commit()))
	rows = append(rows, m.renderRow("Build Date", version.Date()))
	rows = append(rows, m.renderRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
