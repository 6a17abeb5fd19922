package ui

import "fmt"

// renderFavorites lists favorite peripherals with the detail pane.
func (m Model) renderFavorites() string {
	title := fmt.Sprintf("Favorites (%d)", len(m.snapshot.Favorites))
	return m.renderListDetail(title, m.snapshot.Favorites, "No favorites yet. Press f on a peripheral.", m.contentHeight())
}
