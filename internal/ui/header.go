package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/state"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot
	compact := m.width < 100

	parts := []string{bg.Render("perch", styles.Logo)}

	if snap.Loading {
		parts = append(parts, bg.Render("Loading catalog...", styles.WarningText.Bold(true)))
	} else {
		parts = append(parts,
			bg.Render("Catalog:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(snap.Peripherals)), styles.Text),
			bg.Render("Shown:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(snap.Filtered)), styles.Text),
			bg.Render("★", styles.FavoriteMark)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(snap.Favorites)), styles.Text),
			bg.Render("◆", styles.CompareMark)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", len(snap.Comparison), state.MaxCompared), styles.Text),
		)
	}

	if snap.Refreshing {
		parts = append(parts, bg.Render("↻ Syncing", styles.InfoText.Bold(true)))
	} else if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" {
		parts = append(parts, bg.Render("synced", styles.FaintText)+bg.Space()+bg.Render(ts, styles.MutedText))
	}

	if !compact && m.apiURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 32), styles.FaintText))
	}

	if snap.ErrorMessage != "" {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(snap.ErrorMessage, maxErr), styles.DangerText),
		)
	}

	if m.notice != "" {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.notice, 60), styles.WarningText),
		)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// formatTimestamp formats t with a relative suffix measured from now.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	since := now.Sub(t)
	out := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	k := m.keys

	var hints []key.Help
	switch m.currentView {
	case ViewSearch:
		hints = commandHints(k.Search, k.CycleCategory, k.CycleBrand, k.EditMinPrice, k.EditMaxPrice,
			k.ToggleWireless, k.ToggleRGB, k.ToggleMech, k.ClearFilters)
	case ViewComparison:
		hints = commandHints(k.Up, k.RemoveCompare, k.ClearCompare, k.Favorite)
	case ViewHistory:
		hints = commandHints(k.Open, k.DeleteHistory, k.ClearHistory, k.Compare)
	case ViewLogs:
		follow := "Pause"
		if !m.logState.follow {
			follow = "Follow"
		}
		hints = []key.Help{{Key: "Space", Desc: follow}, k.Up.Help(), k.Bottom.Help()}
	default:
		hints = commandHints(k.Open, k.Favorite, k.Compare, k.Search, k.Refresh)
	}
	hints = append(hints, key.Help{Key: "1-5", Desc: m.currentView.String()}, key.Help{Key: "?", Desc: "More"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments, bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
