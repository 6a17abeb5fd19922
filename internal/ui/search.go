package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/state"
)

// searchFormHeight is the box height of the filter form above the results.
const searchFormHeight = 9

// renderSearch renders the filter form and the matching peripherals.
func (m Model) renderSearch() string {
	form := m.renderTitledBox("Search & Filters", m.renderSearchForm(), m.width, searchFormHeight, m.searchActive)

	results := fmt.Sprintf("Results (%d)", len(m.snapshot.Filtered))
	empty := "No peripherals match. Press 0 to clear filters."
	list := m.renderListDetail(results, m.snapshot.Filtered, empty, max(m.contentHeight()-searchFormHeight, 3))
	return lipgloss.JoinVertical(lipgloss.Left, form, list)
}

func (m Model) renderSearchForm() string {
	_, bgColor := m.paneColors(m.searchActive)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	crit := m.snapshot.Criteria

	label := func(s string) string {
		return bg.Render(fmt.Sprintf("%-10s", s), styles.MutedText)
	}
	hint := func(k string) string {
		return bg.Spaces(2) + bg.Render("("+k+")", styles.FaintText)
	}

	var b strings.Builder
	b.WriteString(label("Search") + m.searchInput.View() + hint("/") + "\n")
	b.WriteString(label("Category") + bg.Render(crit.Category.String(), styles.Text) + hint("C") + "\n")
	b.WriteString(label("Brand") + bg.Render(crit.Brand.String(), styles.Text) + hint("B") + "\n")

	price := bg.Render(formatRange(crit.Range), styles.Price)
	if !crit.Bounds.IsUnset() {
		price += bg.Spaces(2) + bg.Render("of "+formatRange(crit.Bounds), styles.FaintText)
	}
	b.WriteString(label("Price") + price + hint("[ ]") + "\n")

	toggles := []string{
		checkbox(bg, styles, crit.WirelessOnly) + bg.Render(state.FeatureWireless.String()+" (w)", styles.Text),
		checkbox(bg, styles, crit.RGBOnly) + bg.Render(state.FeatureRGB.String()+" (b)", styles.Text),
		checkbox(bg, styles, crit.MechanicalOnly) + bg.Render(state.FeatureMechanical.String()+" (m)", styles.Text),
	}
	b.WriteString(label("Features") + bg.Join(toggles, "   ") + "\n")

	summary := fmt.Sprintf("%d of %d shown", len(m.snapshot.Filtered), len(m.snapshot.Peripherals))
	if !crit.IsDefault() {
		summary += " · 0 clears filters"
	}
	b.WriteString(bg.Render(summary, styles.FaintText))
	return b.String()
}

func checkbox(bg BgStyle, styles Styles, on bool) string {
	if on {
		return bg.Render("[x]", styles.AccentText) + bg.Space()
	}
	return bg.Render("[ ]", styles.FaintText) + bg.Space()
}

// formatRange renders a price range, or "any" when unset.
func formatRange(r state.PriceRange) string {
	if r.IsUnset() {
		return "any"
	}
	return "$" + r.Lo.StringFixed(2) + " - $" + r.Hi.StringFixed(2)
}
