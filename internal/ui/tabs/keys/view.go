package keys

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/prismlabs/prism-tui/internal/ui/components"
	"github.com/prismlabs/prism-tui/internal/ui/palette"
	"github.com/prismlabs/prism-tui/internal/ui/styles"
)

// View renders the keys tab.
func (m *Model) View() string {
	switch m.mode {
	case modeCreate:
		return m.viewCreate()
	case modeReveal:
		return m.viewReveal()
	default:
		return m.viewList()
	}
}

func (m *Model) viewList() string {
	if m.state.Loading.Keys {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	keys := m.state.GetKeys()

	var rows []string
	rows = append(rows, styles.TitleStyle.Render("Proxy Keys"))
	rows = append(rows, styles.HelpStyle.Render("n new • d delete"))
	rows = append(rows, "")

	if len(keys) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No keys yet. Press n to create one."))
	}

	for i, k := range keys {
		label := k.Label
		if label == "" {
			label = "unlabeled"
		}
		identity := palette.Resolve(label, i)

		prefix := "  "
		if i == m.selected {
			prefix = styles.FocusedStyle.Render("▸ ")
		}

		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(identity.Dot)).Render("●")
		labelStr := lipgloss.NewStyle().Foreground(lipgloss.Color(identity.Text)).Render(label)
		prefixStr := styles.HelpStyle.Render(k.KeyPrefix + "...")
		created := styles.HelpStyle.Render(k.CreatedAt.Format("2006-01-02"))

		rows = append(rows, fmt.Sprintf("%s%s %s  %s  %s", prefix, dot, labelStr, prefixStr, created))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) viewCreate() string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render("New Proxy Key"))
	rows = append(rows, "")

	rows = append(rows, m.renderField("Label", fieldLabel))
	rows = append(rows, "")
	rows = append(rows, m.renderField("Provider API key", fieldProviderKey))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("enter submit • esc cancel"))

	card := styles.CardStyle.BorderForeground(styles.Primary).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	return styles.CenterBoth(card, m.width, m.height)
}

func (m *Model) renderField(label string, idx int) string {
	style := styles.BlurredStyle
	if m.focused == idx {
		style = styles.FocusedStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(label),
		m.inputs[idx].View(),
	)
}

func (m *Model) viewReveal() string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render("Key Created"))
	rows = append(rows, "")
	rows = append(rows, styles.WarningTextStyle.Render("Copy this key now. It will not be shown again."))
	rows = append(rows, "")
	rows = append(rows, styles.SuccessTextStyle.Bold(true).Render(m.revealed.ProxyKey))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("esc close"))

	card := styles.ModalContentStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	return styles.CenterBoth(card, m.width, m.height)
}
