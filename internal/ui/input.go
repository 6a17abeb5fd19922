package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/state"
)

// dispatch applies ev to the store and refreshes the local snapshot.
func (m *Model) dispatch(ev state.Event) {
	if m.store == nil {
		return
	}
	m.applySnapshot(m.store.Dispatch(ev))
}

// handleGlobalKey handles keys that work in every view. It reports whether
// the key was consumed.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	crit := m.snapshot.Criteria

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetailViewport()
		m.updateLogViewport()
		return nil, true

	case key.Matches(msg, m.keys.Tab):
		return m.cycleView(1), true

	case key.Matches(msg, m.keys.ShiftTab):
		return m.cycleView(-1), true

	case key.Matches(msg, m.keys.ViewCatalog):
		return m.switchView(ViewCatalog), true
	case key.Matches(msg, m.keys.ViewSearch):
		return m.switchView(ViewSearch), true
	case key.Matches(msg, m.keys.ViewFavorites):
		return m.switchView(ViewFavorites), true
	case key.Matches(msg, m.keys.ViewComparison):
		return m.switchView(ViewComparison), true
	case key.Matches(msg, m.keys.ViewHistory):
		return m.switchView(ViewHistory), true
	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs), true

	case key.Matches(msg, m.keys.Refresh):
		m.notice = ""
		return tea.Batch(
			m.actionCmd(func(ctx context.Context, c Controller) error { return c.Refresh(ctx) }),
			m.actionCmd(func(ctx context.Context, c Controller) error { return c.LoadCategories(ctx) }),
		), true

	case key.Matches(msg, m.keys.Search):
		m.switchView(ViewSearch)
		m.searchActive = true
		return m.searchInput.Focus(), true

	case key.Matches(msg, m.keys.CycleCategory):
		m.dispatch(state.CategorySelected{Category: cycleSelection(m.snapshot.Categories, crit.Category)})
		m.savePrefs()
		return nil, true

	case key.Matches(msg, m.keys.CycleBrand):
		m.dispatch(state.BrandSelected{Brand: cycleSelection(m.snapshot.Brands, crit.Brand)})
		return nil, true

	case key.Matches(msg, m.keys.EditMinPrice):
		return m.openPriceModal(priceMin, crit), true

	case key.Matches(msg, m.keys.EditMaxPrice):
		return m.openPriceModal(priceMax, crit), true

	case key.Matches(msg, m.keys.ToggleWireless):
		m.dispatch(state.FeatureToggled{Feature: state.FeatureWireless})
		return nil, true
	case key.Matches(msg, m.keys.ToggleRGB):
		m.dispatch(state.FeatureToggled{Feature: state.FeatureRGB})
		return nil, true
	case key.Matches(msg, m.keys.ToggleMech):
		m.dispatch(state.FeatureToggled{Feature: state.FeatureMechanical})
		return nil, true

	case key.Matches(msg, m.keys.ClearFilters):
		m.dispatch(state.FiltersCleared{})
		m.searchInput.SetValue("")
		m.savePrefs()
		return nil, true

	case key.Matches(msg, m.keys.ClearCompare):
		m.dispatch(state.ComparisonCleared{})
		return nil, true

	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.snapshot.ErrorMessage != "":
			m.dispatch(state.ErrorDismissed{})
		case m.focusedPane == 1:
			m.focusedPane = 0
			m.opened = nil
			m.updateDetailViewport()
		case m.currentView != ViewCatalog:
			return m.switchView(ViewCatalog), true
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) openPriceModal(edge priceEdge, crit state.FilterCriteria) tea.Cmd {
	pm := newPriceModal(edge, crit)
	cmd := pm.input.Focus()
	m.modal = pm
	return cmd
}

// handleSearchInput feeds keys to the search box and applies the term live.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Escape):
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.dispatch(state.SearchChanged{Term: after})
	}
	return m, cmd
}

// handleListKey handles navigation and item actions in the list views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focusedPane == 1 && isNavKey(msg, m.keys) {
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}

	if m.moveCursor(msg) {
		m.opened = nil
		m.updateDetailViewport()
		return m, nil
	}

	p, ok := m.detailPeripheral()
	if !ok {
		return m, nil
	}
	id := p.ID

	switch {
	case key.Matches(msg, m.keys.Open):
		return m, m.openCmd(id)

	case key.Matches(msg, m.keys.Favorite):
		return m, m.actionCmd(func(ctx context.Context, c Controller) error { return c.ToggleFavorite(ctx, id) })

	case key.Matches(msg, m.keys.Compare):
		m.dispatch(state.ComparisonToggled{ID: id})

	case key.Matches(msg, m.keys.RemoveCompare):
		m.dispatch(state.ComparisonRemoved{ID: id})

	case key.Matches(msg, m.keys.DeleteHistory):
		if m.currentView == ViewHistory {
			return m, m.actionCmd(func(ctx context.Context, c Controller) error { return c.DeleteHistory(ctx, id) })
		}

	case key.Matches(msg, m.keys.ClearHistory):
		if m.currentView == ViewHistory && len(m.snapshot.History) > 0 {
			m.modal = newConfirmModal("Clear the whole browsing history?",
				m.actionCmd(func(ctx context.Context, c Controller) error { return c.ClearHistory(ctx) }))
		}
	}
	return m, nil
}

// handleOpened shows the looked-up peripheral in the detail pane.
func (m Model) handleOpened(msg openedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, nil
	}
	if !msg.found {
		m.notice = "peripheral not found"
		return m, nil
	}
	p := msg.peripheral
	m.opened = &p
	m.focusedPane = 1
	m.notice = ""
	m.updateDetailViewport()
	m.detailViewport.GotoTop()
	return m, nil
}

func isNavKey(msg tea.KeyMsg, k keyMap) bool {
	return key.Matches(msg, k.Up) || key.Matches(msg, k.Down) ||
		key.Matches(msg, k.Top) || key.Matches(msg, k.Bottom)
}

// moveCursor applies a navigation key to the current view's cursor.
func (m *Model) moveCursor(msg tea.KeyMsg) bool {
	n := len(m.viewItems(m.currentView))
	cur := m.cursors[m.currentView]
	switch {
	case key.Matches(msg, m.keys.Up):
		cur--
	case key.Matches(msg, m.keys.Down):
		cur++
	case key.Matches(msg, m.keys.Top):
		cur = 0
	case key.Matches(msg, m.keys.Bottom):
		cur = n - 1
	default:
		return false
	}
	m.cursors[m.currentView] = clampIndex(cur, n)
	return true
}

func (m *Model) clampCursor(v View) {
	m.cursors[v] = clampIndex(m.cursors[v], len(m.viewItems(v)))
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// viewItems returns the peripherals listed by view v.
func (m Model) viewItems(v View) []catalog.Peripheral {
	switch v {
	case ViewCatalog, ViewSearch:
		return m.snapshot.Filtered
	case ViewFavorites:
		return m.snapshot.Favorites
	case ViewComparison:
		return m.snapshot.Compared()
	case ViewHistory:
		out := make([]catalog.Peripheral, len(m.snapshot.History))
		for i, item := range m.snapshot.History {
			out[i] = item.Peripheral
		}
		return out
	}
	return nil
}

// selected returns the peripheral under the cursor in the current view.
func (m Model) selected() (catalog.Peripheral, bool) {
	items := m.viewItems(m.currentView)
	cur := m.cursors[m.currentView]
	if cur < 0 || cur >= len(items) {
		return catalog.Peripheral{}, false
	}
	return items[cur], true
}

// detailPeripheral is the peripheral shown in the detail pane: the opened one
// while the detail pane has focus, otherwise the selection.
func (m Model) detailPeripheral() (catalog.Peripheral, bool) {
	if m.focusedPane == 1 && m.opened != nil {
		return *m.opened, true
	}
	return m.selected()
}

// cycleSelection steps All -> options[0] -> ... -> options[n-1] -> All.
func cycleSelection(options []string, current state.Selection) state.Selection {
	if len(options) == 0 {
		return state.None
	}
	if !current.Set {
		return state.Some(options[0])
	}
	for i, o := range options {
		if strings.EqualFold(o, current.Value) {
			if i+1 < len(options) {
				return state.Some(options[i+1])
			}
			return state.None
		}
	}
	return state.Some(options[0])
}
