package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastLifetime = 5 * time.Second

// toastModel holds at most one transient message. Showing a new one
// replaces the current one and restarts the clock; the generation counter
// keeps an old expiry tick from dismissing a newer toast.
type toastModel struct {
	text string
	gen  int
}

func (t *toastModel) Show(text string) tea.Cmd {
	t.text = text
	t.gen++

	gen := t.gen
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastTickMsg{gen: gen}
	})
}

func (t *toastModel) Expire(msg toastTickMsg) {
	if msg.gen == t.gen {
		t.text = ""
	}
}

func (t *toastModel) View() string {
	if t.text == "" {
		return ""
	}
	return toastStyle.Render(t.text)
}
