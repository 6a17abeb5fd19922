package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewCatalog    key.Binding
	ViewSearch     key.Binding
	ViewFavorites  key.Binding
	ViewComparison key.Binding
	ViewHistory    key.Binding
	ViewLogs       key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Item actions
	Favorite      key.Binding
	Compare       key.Binding
	RemoveCompare key.Binding
	ClearCompare  key.Binding
	DeleteHistory key.Binding
	ClearHistory  key.Binding

	// Filters
	Search         key.Binding
	CycleCategory  key.Binding
	CycleBrand     key.Binding
	EditMinPrice   key.Binding
	EditMaxPrice   key.Binding
	ToggleWireless key.Binding
	ToggleRGB      key.Binding
	ToggleMech     key.Binding
	ClearFilters   key.Binding

	// Logs
	ToggleFollow key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Sync catalog"),
		),

		// View switching
		ViewCatalog: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Catalog"),
		),
		ViewSearch: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Search"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Favorites"),
		),
		ViewComparison: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Compare"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "History"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Logs"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open detail"),
		),

		// Item actions
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Toggle compare"),
		),
		RemoveCompare: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove from compare"),
		),
		ClearCompare: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Clear compare"),
		),
		DeleteHistory: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete history entry"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Clear history"),
		),

		// Filters
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Cycle category"),
		),
		CycleBrand: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Cycle brand"),
		),
		EditMinPrice: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Edit min price"),
		),
		EditMaxPrice: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Edit max price"),
		),
		ToggleWireless: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Wireless only"),
		),
		ToggleRGB: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "RGB only"),
		),
		ToggleMech: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Mechanical only"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Clear filters"),
		),

		// Logs
		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewCatalog, k.ViewSearch, k.ViewFavorites, k.ViewComparison, k.ViewHistory, k.ViewLogs},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Escape},
		{k.Favorite, k.Compare, k.RemoveCompare, k.ClearCompare, k.DeleteHistory, k.ClearHistory},
		{k.Search, k.CycleCategory, k.CycleBrand, k.EditMinPrice, k.EditMaxPrice},
		{k.ToggleWireless, k.ToggleRGB, k.ToggleMech, k.ClearFilters},
		{k.Refresh, k.ToggleFollow, k.CycleTheme, k.Help, k.Quit},
	}
}
