package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/catalog"
)

// renderHistory lists viewed peripherals, most recent first, with the time
// each was last opened.
func (m Model) renderHistory() string {
	items := m.snapshot.History
	title := fmt.Sprintf("History (%d)", len(items))
	height := m.contentHeight()
	listFocused := m.focusedPane == 0
	_, listBg := m.paneColors(listFocused)

	listWidth, detailWidth := m.width*45/100, m.width-m.width*45/100
	listHeight, detailHeight := height, height
	if m.width < 100 {
		listWidth, detailWidth = m.width, m.width
		listHeight = max(height/2, 3)
		detailHeight = max(height-listHeight, 3)
	}

	var content string
	if len(items) == 0 {
		content = m.theme.Styles().WithBackground(listBg).MutedText.Render("Nothing viewed yet. Press enter on a peripheral.")
	} else {
		content = m.renderHistoryList(items, m.cursors[ViewHistory], listWidth-2, listHeight-2, listBg)
	}
	list := m.renderTitledBox(title, content, listWidth, listHeight, listFocused)
	detail := m.renderTitledBox("Details", m.detailViewport.View(), detailWidth, detailHeight, !listFocused)

	if m.width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, list, detail)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) renderHistoryList(items []catalog.HistoryItem, cursor, width, height int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	start, end := visibleWindow(len(items), cursor, height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		when := formatViewedAt(item.ViewedAt)
		nameWidth := max(width-len(when)-3, 1)
		name := truncate(item.Peripheral.Name, nameWidth)
		pad := max(nameWidth-lipgloss.Width(name), 0)

		if i == cursor {
			lines = append(lines, styles.Selected.Render(" "+name+strings.Repeat(" ", pad)+" "+when+" "))
			continue
		}
		lines = append(lines, bg.Space()+bg.Render(name, styles.Text)+bg.Spaces(pad+1)+bg.Render(when, styles.MutedText)+bg.Space())
	}
	return strings.Join(lines, "\n")
}

// formatViewedAt renders a history timestamp in local time.
func formatViewedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
