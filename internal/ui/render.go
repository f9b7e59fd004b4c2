package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/filmcard/internal/film"
	"github.com/five82/filmcard/internal/logtail"
)

const (
	aspectBarWidth   = 24
	aspectLabelWidth = 24
	minContentWidth  = 20
)

// renderFilm builds the scrollable detail body for a ready view model.
func renderFilm(vm film.ViewModel, s Styles, width int) string {
	width = max(width, minContentWidth)
	var b strings.Builder

	title := vm.Name
	if title == "" {
		title = "Untitled"
	}
	b.WriteString(s.Title.Render(title))
	if vm.Year != "" {
		b.WriteString(" " + s.MutedText.Render("("+vm.Year+")"))
	}
	b.WriteString("\n")
	if vm.Director != "" {
		b.WriteString(s.MutedText.Render("Directed by ") + s.Text.Render(vm.Director) + "\n")
	}
	if chips := renderGenres(vm.Genres, s); chips != "" {
		b.WriteString(chips + "\n")
	}
	if vm.BackgroundImage != "" {
		b.WriteString(s.FaintText.Render("Backdrop: "+truncateMiddle(vm.BackgroundImage, width-10)) + "\n")
	}

	wrap := lipgloss.NewStyle().Width(width)

	if vm.Synopsis != "" {
		b.WriteString("\n" + s.AccentText.Render("Synopsis") + "\n")
		b.WriteString(wrap.Render(s.Text.Render(vm.Synopsis)) + "\n")
	}

	b.WriteString("\n" + s.AccentText.Render("Review") + "\n")
	review := s.Text.Render(vm.Review)
	if vm.Review == film.DefaultReview {
		review = s.FaintText.Render(vm.Review)
	}
	b.WriteString(wrap.Render(review) + "\n")

	var rows []string
	for _, a := range vm.Aspects {
		if label, score, weight, ok := a.Triple(); ok {
			rows = append(rows, renderAspect(label, score, weight, s))
		}
	}
	if len(rows) > 0 {
		b.WriteString("\n" + s.AccentText.Render("Aspects") + "\n")
		b.WriteString(strings.Join(rows, "\n") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderGenres(genres []string, s Styles) string {
	if len(genres) == 0 {
		return ""
	}
	chips := make([]string, 0, len(genres))
	for i, g := range genres {
		chips = append(chips, s.ChipStyle(i).Render(g))
	}
	return strings.Join(chips, " ")
}

// renderAspect draws "label  ███████░░░  80  (w 20)". Scores are on a 0-100
// scale; anything outside is clamped for the bar but printed as-is. Aspects
// not shaped as [label, score, weight] are left out of the card.
func renderAspect(name string, score, weight float64, s Styles) string {
	filled := int(math.Round(clamp(score, 0, 100) / 100 * aspectBarWidth))
	bar := s.SuccessText.Render(strings.Repeat("█", filled)) +
		s.FaintText.Render(strings.Repeat("░", aspectBarWidth-filled))

	label := truncateMiddle(name, aspectLabelWidth)
	label += strings.Repeat(" ", max(0, aspectLabelWidth-lipgloss.Width(label)))

	return fmt.Sprintf("%s %s %s %s",
		s.Text.Render(label),
		bar,
		s.Text.Render(formatNumber(score)),
		s.MutedText.Render("(w "+formatNumber(weight)+")"),
	)
}

func renderDiagnostics(entries []logtail.Entry, s Styles, width, limit int) string {
	if len(entries) == 0 {
		return s.FaintText.Render("No diagnostics logged.")
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		level := e.Level
		if level == "" {
			lines = append(lines, s.FaintText.Render(truncateMiddle(e.Raw, width)))
			continue
		}
		text := e.Message
		if e.Attrs != "" {
			text += " " + e.Attrs
		}
		lines = append(lines, s.LevelStyle(level).Render(fmt.Sprintf("%-5s", level))+" "+
			s.Text.Render(truncateMiddle(text, width-6)))
	}
	return strings.Join(lines, "\n")
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// truncateMiddle shortens value to at most limit runes, eliding the middle.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1 // room for the ellipsis rune
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}
