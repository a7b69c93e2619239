// Package palette assigns stable colors to spend categories. Labels that
// mention a known department always map to that department's colors; anything
// else cycles through a fixed chart palette by position.
package palette

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorIdentity is the set of color roles for one category, as hex strings.
// It is recomputed on every render path that needs it, never stored.
type ColorIdentity struct {
	Background string
	Text       string
	Dot        string
	Fill       string
	Border     string
}

// category pairs a department keyword with its colors. Matching is a linear
// scan in declaration order; the order is part of the contract.
type category struct {
	keyword string
	colors  ColorIdentity
}

// departmentCategories is the fixed, ordered department table from the Prism
// design system. First substring match wins.
var departmentCategories = []category{
	{"legal", identityFor("#8B5CF6", "#A78BFA")},
	{"sales", identityFor("#F59E0B", "#FBBF24")},
	{"engineering", identityFor("#38BDF8", "#7DD3FC")},
	{"hr", identityFor("#10B981", "#6EE7B7")},
	{"marketing", identityFor("#F43F5E", "#FDA4AF")},
	{"finance", identityFor("#A855F7", "#C4B5FD")},
	{"product", identityFor("#FB923C", "#FDBA74")},
}

// chartColors is the cyclic fallback palette for unmatched labels.
var chartColors = []string{
	"#8B5CF6", "#F59E0B", "#38BDF8", "#10B981",
	"#F43F5E", "#A855F7", "#FB923C", "#E879F9",
}

// identityFor derives a full color identity from a fill and text color.
// Background and border reuse the fill with fixed alpha suffixes.
func identityFor(fill, text string) ColorIdentity {
	return ColorIdentity{
		Background: fill + "1F",
		Text:       text,
		Dot:        fill,
		Fill:       fill,
		Border:     fill + "4D",
	}
}

// Resolve maps a label and positional index to a color identity. It is pure
// and deterministic: output depends solely on the two inputs. An empty label
// or one matching no department falls back to the chart palette at
// index mod len(palette).
func Resolve(label string, index int) ColorIdentity {
	if label != "" {
		lower := strings.ToLower(label)
		for _, cat := range departmentCategories {
			if strings.Contains(lower, cat.keyword) {
				return cat.colors
			}
		}
	}

	if index < 0 {
		index = -index
	}
	fill := chartColors[index%len(chartColors)]
	return identityFor(fill, fill)
}

// PaletteSize returns the length of the cyclic fallback palette.
func PaletteSize() int {
	return len(chartColors)
}

// DotStyle returns a lipgloss style rendering in the dot color.
func (c ColorIdentity) DotStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dot))
}

// TextStyle returns a lipgloss style rendering in the text color.
func (c ColorIdentity) TextStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text))
}

// DotGlyph renders the category marker glyph in the dot color.
func (c ColorIdentity) DotGlyph() string {
	return c.DotStyle().Render("●")
}
