package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const toastFPS = 60

type toastTickMsg struct{}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second/toastFPS, func(time.Time) tea.Msg { return toastTickMsg{} })
}

type toastModel struct {
	msg     string
	visible bool
	until   time.Time

	x float64
	v float64

	spring harmonica.Spring
}

func newToast() toastModel {
	return toastModel{
		spring: harmonica.NewSpring(harmonica.FPS(toastFPS), 8.0, 0.65),
	}
}

func (t *toastModel) Show(msg string, d time.Duration) {
	t.msg = msg
	t.visible = true
	t.until = time.Now().Add(d)
	t.x = 0
	t.v = 0
}

// Update advances the spring one frame and reports whether another frame is
// needed.
func (t *toastModel) Update() bool {
	if t.msg == "" {
		return false
	}
	if t.visible && time.Now().After(t.until) {
		t.visible = false
	}
	target := 0.0
	if t.visible {
		target = 1.0
	}
	t.x, t.v = t.spring.Update(t.x, t.v, target)
	if !t.visible && t.x < 0.02 {
		t.msg = ""
		return false
	}
	return true
}

func (t toastModel) View(styles Styles) string {
	if t.msg == "" {
		return ""
	}
	// Slide in from left.
	offset := int((1.0 - t.x) * 18.0)
	if offset < 0 {
		offset = 0
	}
	return strings.Repeat(" ", offset) + styles.Toast.Render(t.msg)
}
