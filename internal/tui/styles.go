package tui

import "github.com/charmbracelet/lipgloss"

// Colors is the viewer palette; every entry adapts to light/dark terminals.
type Colors struct {
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Warning     lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Surface     lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	TextSubtle  lipgloss.AdaptiveColor
	BorderMuted lipgloss.AdaptiveColor
}

// PastelColors is the Tokyo Night / Rosé Pine Dawn pastel palette.
func PastelColors() Colors {
	return Colors{
		Accent:      lipgloss.AdaptiveColor{Light: "#5A7BC0", Dark: "#7AA2F7"},
		Success:     lipgloss.AdaptiveColor{Light: "#5B8A3A", Dark: "#9ECE6A"},
		Warning:     lipgloss.AdaptiveColor{Light: "#C48F2C", Dark: "#E0AF68"},
		Error:       lipgloss.AdaptiveColor{Light: "#C74B5C", Dark: "#F7768E"},
		Surface:     lipgloss.AdaptiveColor{Light: "#F5F0E8", Dark: "#24283B"},
		Text:        lipgloss.AdaptiveColor{Light: "#383A42", Dark: "#C0CAF5"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#6C6E7A", Dark: "#9AA5CE"},
		TextSubtle:  lipgloss.AdaptiveColor{Light: "#9DA0AB", Dark: "#565F89"},
		BorderMuted: lipgloss.AdaptiveColor{Light: "#E8E4DC", Dark: "#292E42"},
	}
}

type Styles struct {
	Colors Colors

	Header     lipgloss.Style
	HeaderMeta lipgloss.Style
	Footer     lipgloss.Style
	Toast      lipgloss.Style

	Line    lipgloss.Style
	Suite   lipgloss.Style
	Pass    lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style
}

func DefaultStyles() Styles {
	c := PastelColors()
	return Styles{
		Colors: c,

		Header:     lipgloss.NewStyle().Bold(true).Foreground(c.Accent).Padding(0, 1),
		HeaderMeta: lipgloss.NewStyle().Foreground(c.TextSubtle),
		Footer:     lipgloss.NewStyle().Foreground(c.TextMuted).Padding(0, 1),
		Toast: lipgloss.NewStyle().
			Foreground(c.Text).
			Background(c.Surface).
			Padding(0, 1),

		Line:    lipgloss.NewStyle().Foreground(c.Text),
		Suite:   lipgloss.NewStyle().Foreground(c.Accent),
		Pass:    lipgloss.NewStyle().Foreground(c.Success),
		Warning: lipgloss.NewStyle().Foreground(c.Warning),
		Failure: lipgloss.NewStyle().Foreground(c.Error).Bold(true),
	}
}

func (s Styles) forKind(k LineKind) lipgloss.Style {
	switch k {
	case LineSuite:
		return s.Suite
	case LinePass:
		return s.Pass
	case LineWarning:
		return s.Warning
	case LineFailure:
		return s.Failure
	default:
		return s.Line
	}
}
