package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/state"
)

// missingSpec fills comparison cells for specs a peripheral does not list.
const missingSpec = "-"

// comparisonRows builds the comparison table. Each row starts with its label
// followed by one cell per peripheral.
func comparisonRows(ps []catalog.Peripheral) [][]string {
	row := func(label string, cell func(catalog.Peripheral) string) []string {
		r := make([]string, 0, len(ps)+1)
		r = append(r, label)
		for _, p := range ps {
			r = append(r, cell(p))
		}
		return r
	}

	rows := [][]string{
		row("Name", func(p catalog.Peripheral) string { return p.Name }),
		row("Brand", func(p catalog.Peripheral) string { return p.Brand }),
		row("Category", func(p catalog.Peripheral) string { return p.Category }),
		row("Price", formatPrice),
	}
	for _, k := range state.SpecUnion(ps) {
		rows = append(rows, row(k, func(p catalog.Peripheral) string {
			if v, ok := p.Specs[k]; ok && v != "" {
				return v
			}
			return missingSpec
		}))
	}
	rows = append(rows, row("Features", func(p catalog.Peripheral) string {
		if len(p.Features) == 0 {
			return missingSpec
		}
		return strings.Join(p.Features, ", ")
	}))
	return rows
}

// renderComparison renders the compared peripherals side by side.
func (m Model) renderComparison() string {
	compared := m.snapshot.Compared()
	title := fmt.Sprintf("Comparison (%d/%d)", len(compared), state.MaxCompared)
	height := m.contentHeight()
	_, bgColor := m.paneColors(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	if len(compared) == 0 {
		msg := styles.MutedText.Render("Nothing to compare. Press c on up to three peripherals.")
		return m.renderTitledBox(title, msg, m.width, height, true)
	}

	rows := comparisonRows(compared)
	inner := max(m.width-2, 10)
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r[0]))
	}
	labelWidth = min(labelWidth, inner/4)
	colWidth := max((inner-labelWidth-1)/len(compared)-1, 4)
	cursor := m.cursors[ViewComparison]

	lines := make([]string, 0, len(rows)+1)
	for ri, r := range rows {
		label := truncate(r[0], labelWidth)
		line := bg.Render(label+strings.Repeat(" ", max(labelWidth-lipgloss.Width(label), 0)), styles.MutedText) + bg.Space()
		for ci, cell := range r[1:] {
			text := truncate(cell, colWidth)
			text += strings.Repeat(" ", max(colWidth-lipgloss.Width(text), 0))
			style := styles.Text
			switch {
			case ci == cursor:
				style = styles.AccentText
			case ri == 3:
				style = styles.Price
			}
			if ri == 0 && ci == cursor {
				style = styles.Selected
			}
			line += bg.Render(text, style) + bg.Space()
		}
		lines = append(lines, line)
		if ri == 3 {
			lines = append(lines, bg.Render(strings.Repeat("─", inner), styles.FaintText))
		}
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

// handleComparisonKey moves between columns and edits the comparison.
func (m Model) handleComparisonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveCursor(msg) {
		return m, nil
	}
	p, ok := m.selected()
	if !ok {
		return m, nil
	}
	id := p.ID
	switch {
	case key.Matches(msg, m.keys.RemoveCompare), key.Matches(msg, m.keys.Compare):
		m.dispatch(state.ComparisonRemoved{ID: id})
	case key.Matches(msg, m.keys.Favorite):
		return m, m.actionCmd(func(ctx context.Context, c Controller) error { return c.ToggleFavorite(ctx, id) })
	case key.Matches(msg, m.keys.Open):
		m.currentView = ViewCatalog
		return m, m.openCmd(id)
	}
	return m, nil
}
