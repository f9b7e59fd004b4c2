package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/filmcard/internal/fetch"
)

func (m Model) renderHeader() string {
	left := m.styles.Title.Render("filmcard") + "  " + m.styles.PhaseStyle(m.state.Phase).Render(m.state.Phase.String())
	locator := "(no film selected)"
	if m.locator != nil {
		locator = *m.locator
	}
	room := m.width - lipgloss.Width(left) - 4
	right := m.styles.MutedText.Render(truncateMiddle(locator, room))
	return m.styles.Header.Width(m.width).Render(left + "  " + right)
}

func (m Model) renderBody() string {
	switch m.state.Phase {
	case fetch.Ready:
		return m.viewport.View()
	case fetch.Failed:
		box := m.styles.Error.Width(min(m.contentWidth(), 80)).Render(
			m.styles.DangerText.Render("Could not load film") + "\n\n" + m.state.Message +
				"\n\n" + m.styles.MutedText.Render("Press r to retry or o to open another film."))
		return lipgloss.Place(m.contentWidth(), m.contentHeight(), lipgloss.Center, lipgloss.Center, box)
	default:
		text := m.spinner.View() + " " + m.styles.Text.Render("Fetching film details...")
		return lipgloss.Place(m.contentWidth(), m.contentHeight(), lipgloss.Center, lipgloss.Center, text)
	}
}

func (m Model) renderFooter() string {
	keys := []struct{ key, desc string }{
		{"r", "reload"},
		{"o", "open"},
		{"d", "diagnostics"},
		{"T", "theme"},
		{"q", "quit"},
	}
	if m.editing {
		keys = []struct{ key, desc string }{{"enter", "fetch"}, {"esc", "cancel"}}
	} else if m.state.Phase == fetch.Ready {
		keys = append([]struct{ key, desc string }{{"j/k", "scroll"}}, keys...)
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m.styles.AccentText.Render("<"+k.key+">")+" "+k.desc)
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}
