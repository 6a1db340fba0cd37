package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("🧭 What to do?"),
		m.theme.Box.Render(m.renderFilter()),
		m.renderResults(),
	}
	if s := m.renderStatus(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilter() string {
	sel := m.filter.Snapshot()
	modes := m.policy.Snapshot()

	lines := make([]string, 0, model.FieldCount)
	for _, f := range model.Fields() {
		line := fmt.Sprintf("%-12s %-9s %s", f.Title(), modes.Mode(f), f.Label(sel.Get(f)))
		if f == m.cursor {
			lines = append(lines, m.theme.Selected.Render("> "+line))
			continue
		}
		lines = append(lines, m.theme.Normal.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResults() string {
	if m.ranking.Generation == 0 {
		return m.theme.Subtitle.Render("Loading activities...")
	}
	if m.ranking.Len() == 0 {
		return m.theme.Subtitle.Render("The catalog is empty. Add activities with 'whattodo add'.")
	}

	full := len(m.ranking.FullMatches())
	header := m.theme.Subtitle.Render(fmt.Sprintf("%d of %d activities match", full, m.ranking.Len()))

	limit := m.results
	if limit > m.ranking.Len() {
		limit = m.ranking.Len()
	}

	rows := []string{header}
	for i, res := range m.ranking.Results[:limit] {
		rows = append(rows, m.renderResult(i+1, res))
	}
	if more := m.ranking.Len() - limit; more > 0 {
		rows = append(rows, m.theme.Mismatch.Render(fmt.Sprintf("  ... %d more", more)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderResult(rank int, res match.Result) string {
	line := fmt.Sprintf("%2d. [%d/%d] %s", rank, res.Score, match.MaxScore, res.Activity.Name)
	switch {
	case len(res.Mismatches) == 0:
		return m.theme.FullMatch.Render(line)
	case res.Score > 0:
		return m.theme.Partial.Render(line) +
			m.theme.Mismatch.Render("  misses "+strings.Join(res.MismatchNames(), ", "))
	default:
		return m.theme.Mismatch.Render(line)
	}
}

func (m Model) renderStatus() string {
	switch {
	case m.lastError != nil:
		return m.theme.Error.Render("Error: " + m.lastError.Error())
	case m.closed:
		return m.theme.Error.Render("Catalog updates stopped")
	case m.status != "":
		return m.theme.Status.Render(m.status)
	default:
		return ""
	}
}
