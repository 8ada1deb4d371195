package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const scrollbarWidth = 1

// scrollbarLines renders a one-column track with a thumb sized to the visible
// fraction of content.
func scrollbarLines(height, content, offset int, styles Styles) []string {
	if height <= 0 {
		return nil
	}
	lines := make([]string, height)
	if content <= height {
		blank := strings.Repeat(" ", scrollbarWidth)
		for i := range lines {
			lines[i] = blank
		}
		return lines
	}

	track := lipgloss.NewStyle().Foreground(styles.Colors.BorderMuted).Render("│")
	thumb := lipgloss.NewStyle().Foreground(styles.Colors.TextMuted).Render("█")

	thumbHeight := int(math.Round(float64(height) * float64(height) / float64(content)))
	thumbHeight = max(1, min(thumbHeight, height))

	maxScroll := max(1, content-height)
	thumbTop := int(math.Round(float64(offset) / float64(maxScroll) * float64(height-thumbHeight)))
	thumbTop = max(0, min(thumbTop, height-thumbHeight))

	for i := range lines {
		if i >= thumbTop && i < thumbTop+thumbHeight {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return lines
}

// withScrollbar appends a scrollbar column to the viewport's rendered lines.
func withScrollbar(vp viewport.Model, styles Styles) string {
	lines := strings.Split(vp.View(), "\n")
	for len(lines) < vp.Height {
		lines = append(lines, "")
	}
	if len(lines) > vp.Height {
		lines = lines[:vp.Height]
	}
	bar := scrollbarLines(vp.Height, vp.TotalLineCount(), vp.YOffset, styles)
	w := lipgloss.NewStyle().Width(vp.Width)
	for i := range lines {
		lines[i] = w.Render(lines[i]) + bar[i]
	}
	return strings.Join(lines, "\n")
}
