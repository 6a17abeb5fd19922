package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/catalog"
)

// renderCatalog renders the filtered catalog as a list with a detail pane.
func (m Model) renderCatalog() string {
	title := fmt.Sprintf("Catalog (%d)", len(m.snapshot.Filtered))
	if !m.snapshot.Criteria.IsDefault() {
		title = fmt.Sprintf("Catalog (%d of %d, filtered)", len(m.snapshot.Filtered), len(m.snapshot.Peripherals))
	}
	empty := "No peripherals match the current filters."
	if len(m.snapshot.Peripherals) == 0 {
		empty = "The catalog is empty. Press r to sync."
		if m.snapshot.Loading {
			empty = "Loading..."
		}
	}
	return m.renderListDetail(title, m.snapshot.Filtered, empty, m.contentHeight())
}

// renderListDetail lays a peripheral list and the detail pane side by side,
// or stacked on narrow terminals.
func (m Model) renderListDetail(title string, items []catalog.Peripheral, empty string, height int) string {
	listFocused := m.focusedPane == 0
	_, listBg := m.paneColors(listFocused)
	cursor := m.cursors[m.currentView]

	if m.width < 100 {
		listHeight := max(height/2, 3)
		detailHeight := max(height-listHeight, 3)
		list := m.renderListBox(title, items, empty, cursor, m.width, listHeight, listFocused, listBg)
		detail := m.renderTitledBox("Details", m.detailViewport.View(), m.width, detailHeight, !listFocused)
		return lipgloss.JoinVertical(lipgloss.Left, list, detail)
	}

	listWidth := m.width * 45 / 100
	detailWidth := m.width - listWidth
	list := m.renderListBox(title, items, empty, cursor, listWidth, height, listFocused, listBg)
	detail := m.renderTitledBox("Details", m.detailViewport.View(), detailWidth, height, !listFocused)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderListBox(title string, items []catalog.Peripheral, empty string, cursor, width, height int, focused bool, bgColor string) string {
	var content string
	if len(items) == 0 {
		styles := m.theme.Styles().WithBackground(bgColor)
		content = styles.MutedText.Render(empty)
	} else {
		content = m.renderPeripheralList(items, cursor, width-2, height-2, bgColor)
	}
	return m.renderTitledBox(title, content, width, height, focused)
}

// renderPeripheralList renders one row per peripheral:
// ★◆ name · brand ........ $price
func (m Model) renderPeripheralList(items []catalog.Peripheral, cursor, width, height int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	start, end := visibleWindow(len(items), cursor, height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := items[i]
		selected := i == cursor

		fav := bg.Space()
		if p.IsFavorite {
			fav = bg.Render("★", styles.FavoriteMark)
		}
		cmp := bg.Space()
		if m.snapshot.InComparison(p.ID) {
			cmp = bg.Render("◆", styles.CompareMark)
		}

		price := formatPrice(p)
		nameWidth := max(width-lipgloss.Width(price)-5, 1)
		label := truncate(p.Name+" · "+p.Brand, nameWidth)
		pad := max(nameWidth-lipgloss.Width(label), 0)

		if selected {
			sel := styles.Selected
			lines = append(lines, fav+cmp+sel.Render(" "+label+strings.Repeat(" ", pad)+" "+price+" "))
			continue
		}
		lines = append(lines, fav+cmp+bg.Space()+bg.Render(label, styles.Text)+bg.Spaces(pad+1)+
			bg.Render(price, styles.Price)+bg.Space())
	}
	return strings.Join(lines, "\n")
}

// formatPrice renders a price with two decimals.
func formatPrice(p catalog.Peripheral) string {
	return "$" + p.Price.StringFixed(2)
}

// renderDetailContent renders every field of p for the detail pane.
func (m Model) renderDetailContent(p catalog.Peripheral, width int) string {
	_, bgColor := m.paneColors(m.focusedPane == 1)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var b strings.Builder
	name := styles.Text.Bold(true).Render(p.Name)
	if p.IsFavorite {
		name += bg.Space() + bg.Render("★", styles.FavoriteMark)
	}
	if m.snapshot.InComparison(p.ID) {
		name += bg.Space() + bg.Render("◆ comparing", styles.CompareMark)
	}
	b.WriteString(name + "\n")
	b.WriteString(bg.Render(p.Brand+" · "+p.Category, styles.MutedText) + "\n")
	b.WriteString(bg.Render(formatPrice(p), styles.Price.Bold(true)) + "\n")

	if desc := strings.TrimSpace(p.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(width, 10)).Render(bg.Render(desc, styles.Text)))
		b.WriteString("\n")
	}

	if keys := p.SpecKeys(); len(keys) > 0 {
		b.WriteString("\n" + bg.Render("Specs", styles.AccentText.Bold(true)) + "\n")
		labelWidth := 0
		for _, k := range keys {
			labelWidth = max(labelWidth, lipgloss.Width(k))
		}
		for _, k := range keys {
			b.WriteString(bg.Render(k+strings.Repeat(" ", labelWidth-lipgloss.Width(k)), styles.MutedText))
			b.WriteString(bg.Spaces(2) + bg.Render(p.Specs[k], styles.Text) + "\n")
		}
	}

	if len(p.Features) > 0 {
		b.WriteString("\n" + bg.Render("Features", styles.AccentText.Bold(true)) + "\n")
		for _, f := range p.Features {
			b.WriteString(bg.Render("• "+f, styles.Text) + "\n")
		}
	}

	if p.ImageURL != "" {
		b.WriteString("\n" + bg.Render("Image", styles.FaintText) + bg.Space() +
			bg.Render(truncateMiddle(p.ImageURL, max(width-6, 10)), styles.FaintText) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// detailPaneWidth is the inner width of the detail pane for the current layout.
func (m Model) detailPaneWidth() int {
	if m.width < 100 {
		return max(m.width-2, 1)
	}
	return max(m.width-m.width*45/100-2, 1)
}

func (m Model) detailPaneHeight() int {
	h := m.contentHeight()
	if m.currentView == ViewSearch {
		h -= searchFormHeight
	}
	if m.width < 100 {
		h -= max(h/2, 3)
	}
	return max(h-2, 1)
}

func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(m.detailPaneWidth(), m.detailPaneHeight())
}

// updateDetailViewport resizes the detail viewport and loads the peripheral
// currently shown.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = m.detailPaneWidth()
	m.detailViewport.Height = m.detailPaneHeight()
	_, bgColor := m.paneColors(m.focusedPane == 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	p, ok := m.detailPeripheral()
	if !ok {
		m.detailViewport.SetContent(m.theme.Styles().WithBackground(bgColor).MutedText.Render("Nothing selected."))
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(p, m.detailViewport.Width))
}
