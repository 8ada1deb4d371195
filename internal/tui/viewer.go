package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastDuration = 1500 * time.Millisecond

// Model is a read-only pager over one exported test log.
type Model struct {
	title    string
	lines    []string
	kinds    []LineKind
	failures []int

	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   Styles
	toast    toastModel

	// lastJump is the failure line last jumped to; it anchors n/N while the
	// viewport still sits at lastOffset (SetYOffset clamps near the end).
	lastJump   int
	lastOffset int

	width  int
	height int
	ready  bool
}

func NewModel(title, text string) Model {
	lines := splitLines(text)
	kinds := make([]LineKind, len(lines))
	failures := []int{}
	for i, ln := range lines {
		kinds[i] = classifyLine(ln)
		if kinds[i] == LineFailure {
			failures = append(failures, i)
		}
	}
	return Model{
		title:    title,
		lines:    lines,
		kinds:    kinds,
		failures: failures,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   DefaultStyles(),
		toast:    newToast(),
		lastJump: -1,
	}
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if !m.ready {
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		}
		return m, nil

	case toastTickMsg:
		if m.toast.Update() {
			return m, toastTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.NextFailure):
			return m, m.jumpFailure(1)
		case key.Matches(msg, m.keys.PrevFailure):
			return m, m.jumpFailure(-1)
		case key.Matches(msg, m.keys.ScrollTop):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.ScrollBottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) layout() {
	headerHeight := 1
	footerHeight := lipgloss.Height(m.help.View(m.keys)) + 1
	m.help.Width = m.width
	m.viewport.Width = max(0, m.width-scrollbarWidth)
	m.viewport.Height = max(0, m.height-headerHeight-footerHeight)
}

func (m Model) renderContent() string {
	if len(m.lines) == 0 {
		return m.styles.HeaderMeta.Render("(no output captured)")
	}
	var b strings.Builder
	for i, ln := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.styles.forKind(m.kinds[i]).Render(ln))
	}
	return b.String()
}

// jumpFailure scrolls to the next (dir > 0) or previous failure line relative
// to the top of the viewport.
func (m *Model) jumpFailure(dir int) tea.Cmd {
	anchor := m.viewport.YOffset
	if m.lastJump >= 0 && m.viewport.YOffset == m.lastOffset {
		anchor = m.lastJump
	}
	target := -1
	if dir > 0 {
		for _, idx := range m.failures {
			if idx > anchor {
				target = idx
				break
			}
		}
	} else {
		for i := len(m.failures) - 1; i >= 0; i-- {
			if m.failures[i] < anchor {
				target = m.failures[i]
				break
			}
		}
	}
	if target < 0 {
		msg := "No more failures"
		if len(m.failures) == 0 {
			msg = "No failures in this log"
		}
		m.toast.Show(msg, toastDuration)
		return toastTick()
	}
	m.viewport.SetYOffset(target)
	m.lastJump = target
	m.lastOffset = m.viewport.YOffset
	return nil
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}
	header := m.styles.Header.Render(m.title) +
		m.styles.HeaderMeta.Render(fmt.Sprintf("%d lines · %d failures · %3.f%%", len(m.lines), len(m.failures), m.viewport.ScrollPercent()*100))
	if t := m.toast.View(m.styles); t != "" {
		header += "  " + t
	}
	footer := m.styles.Footer.Render(m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, header, withScrollbar(m.viewport, m.styles), footer)
}
