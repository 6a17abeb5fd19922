package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/state"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// priceEdge selects which end of the price range a priceModal edits.
type priceEdge int

const (
	priceMin priceEdge = iota
	priceMax
)

// priceModal edits one endpoint of the selected price range.
type priceModal struct {
	edge   priceEdge
	input  textinput.Model
	rng    state.PriceRange
	bounds state.PriceRange
	err    string
}

func newPriceModal(edge priceEdge, crit state.FilterCriteria) priceModal {
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.CharLimit = 12
	current := crit.Range.Lo
	if edge == priceMax {
		current = crit.Range.Hi
	}
	ti.SetValue(current.StringFixed(2))
	ti.CursorEnd()
	return priceModal{edge: edge, input: ti, rng: crit.Range, bounds: crit.Bounds}
}

func (p priceModal) title() string {
	if p.edge == priceMax {
		return "Maximum price"
	}
	return "Minimum price"
}

// Update implements Modal.
func (p priceModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, keys.Escape):
			return p, nil, true
		case key.Matches(kmsg, keys.Confirm):
			value, err := parsePrice(p.input.Value())
			if err != "" {
				p.err = err
				return p, nil, false
			}
			lo, hi := p.rng.Lo, p.rng.Hi
			if p.edge == priceMax {
				hi = value
			} else {
				lo = value
			}
			return p, dispatchCmd(state.PriceRangeChanged{Lo: lo, Hi: hi}), true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return p, cmd, false
}

// View implements Modal.
func (p priceModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.title()))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if !p.bounds.IsUnset() {
		b.WriteString(styles.MutedText.Render("catalog range " + formatRange(p.bounds)))
		b.WriteString("\n")
	}
	if p.err != "" {
		b.WriteString(styles.DangerText.Render(p.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("enter apply · esc cancel"))
	return placeModal(theme, width, height, b.String())
}

// parsePrice reads a non-negative decimal, tolerating a leading "$".
func parsePrice(raw string) (decimal.Decimal, string) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "$")
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, "not a price"
	}
	if d.IsNegative() {
		return decimal.Zero, "price cannot be negative"
	}
	return d, ""
}

// confirmModal asks a yes/no question and runs onYes when confirmed.
type confirmModal struct {
	prompt string
	onYes  tea.Cmd
}

func newConfirmModal(prompt string, onYes tea.Cmd) confirmModal {
	return confirmModal{prompt: prompt, onYes: onYes}
}

// Update implements Modal.
func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case kmsg.String() == "y", key.Matches(kmsg, keys.Confirm):
		return c, c.onYes, true
	case kmsg.String() == "n", key.Matches(kmsg, keys.Escape):
		return c, nil, true
	}
	return c, nil, false
}

// View implements Modal.
func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.Text.Render(c.prompt) + "\n\n" +
		styles.FaintText.Render("y/enter confirm · n/esc cancel")
	return placeModal(theme, width, height, content)
}

// placeModal centers content in a bordered box over the screen.
func placeModal(theme Theme, width, height int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(44).
		Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
