package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Views read the pane colors directly and derive
// text styles through Styles.
type Theme struct {
	Name string

	Background string // behind modals and help
	Surface    string // header and search bar
	SurfaceAlt string // unfocused panes
	FocusBg    string // focused pane and log overlay

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Favorite marks favorited peripherals; Compare marks compared ones.
	Favorite string
	Compare  string
}

// Styles holds the lipgloss styles the views render with.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	FavoriteMark lipgloss.Style
	CompareMark  lipgloss.Style
	Price        lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		FavoriteMark: fg(t.Favorite).Bold(true),
		CompareMark:  fg(t.Compare).Bold(true),
		Price:        fg(t.Success),
	}
}

// WithBackground paints every style onto bgColor so rendered fragments
// never fall through to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.WarningText, &s.DangerText, &s.InfoText,
		&s.Header, &s.Logo, &s.Selected,
		&s.FavoriteMark, &s.CompareMark, &s.Price,
	} {
		*st = st.Background(bg)
	}
	return s
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// Palettes, in field order:
// background, surface, surfaceAlt, focus, selectionBg, selectionText,
// border, borderFocus, text, muted, faint, accent, success, warning,
// danger, info, favorite, compare.
var palettes = map[string][18]string{
	// github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		"#131a24", "#192330", "#212e3f", "#29394f", "#2b3b51", "#cdcecf",
		"#39506d", "#719cd6", "#cdcecf", "#738091", "#71839b", "#719cd6",
		"#81b29a", "#dbc074", "#c94f6d", "#63cdcf", "#dbc074", "#9d79d6",
	},
	// github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		"#16161D", "#1F1F28", "#2A2A37", "#2A2A37", "#2D4F67", "#DCD7BA",
		"#54546D", "#7E9CD8", "#DCD7BA", "#C8C093", "#727169", "#7E9CD8",
		"#98BB6C", "#E6C384", "#E46876", "#7FB4CA", "#E6C384", "#957FB8",
	},
	// Tailwind slate with sky accents
	"Slate": {
		"#020617", "#0f172a", "#1e293b", "#283548", "#0284c7", "#f8fafc",
		"#334155", "#38bdf8", "#f1f5f9", "#94a3b8", "#64748b", "#38bdf8",
		"#22c55e", "#f59e0b", "#ef4444", "#06b6d4", "#f59e0b", "#a78bfa",
	},
}

func themeFromPalette(name string, p [18]string) Theme {
	return Theme{
		Name:       name,
		Background: p[0], Surface: p[1], SurfaceAlt: p[2], FocusBg: p[3],
		SelectionBg: p[4], SelectionText: p[5],
		Border: p[6], BorderFocus: p[7],
		Text: p[8], Muted: p[9], Faint: p[10], Accent: p[11],
		Success: p[12], Warning: p[13], Danger: p[14], Info: p[15],
		Favorite: p[16], Compare: p[17],
	}
}

// ThemeNames lists the themes in cycling order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// GetTheme returns the named theme, or Nightfox when the name is unknown.
func GetTheme(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		name = themeOrder[0]
		p = palettes[name]
	}
	return themeFromPalette(name, p)
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}
