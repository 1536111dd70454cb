package tui

import (
	"fmt"
	"strings"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// controlModel renders the disconnector panel. Each row has its own busy
// flag so one in-flight toggle never blocks the others; the flag clears
// when the write result lands, and the shown state only changes when the
// update event echoes back.
type controlModel struct {
	switches *livesync.Collection[types.Disconnector]
	cursor   int
	busy     map[string]bool
}

func newControlModel() controlModel {
	return controlModel{busy: map[string]bool{}}
}

func (m *controlModel) selected() (types.Disconnector, bool) {
	if m.switches == nil {
		return types.Disconnector{}, false
	}

	snapshot := m.switches.Snapshot()
	if m.cursor < 0 || m.cursor >= len(snapshot) {
		return types.Disconnector{}, false
	}
	return snapshot[m.cursor], true
}

func (m *controlModel) clampCursor() {
	if m.switches == nil {
		m.cursor = 0
		return
	}
	if n := m.switches.Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *controlModel) view(operator bool) string {
	if m.switches == nil {
		return mutedStyle.Render("loading...")
	}
	if err := m.switches.Err(); err != nil {
		return errorStyle.Render("control center unavailable: " + err.Error())
	}
	if m.switches.Loading() {
		return mutedStyle.Render("loading...")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Disconnector Control"))
	b.WriteString("\n\n")

	for i, d := range m.switches.Snapshot() {
		state := healthyStyle.Render(d.Status)
		if d.Status == types.SwitchStateDisconnected {
			state = criticalStyle.Render(d.Status)
		}

		line := fmt.Sprintf("%-10s %-8s %-14s last %s by %s",
			d.ID, d.AssetID, state,
			d.LastChanged.Format("Jan 02 15:04"), d.Operator,
		)

		if m.busy[d.ID] {
			line += " " + warningStyle.Render("(switching...)")
		}

		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if operator {
		b.WriteString(mutedStyle.Render("j/k select · enter toggle"))
	} else {
		b.WriteString(disabledStyle.Render("enter toggle (Permission Denied)"))
	}

	return b.String()
}
