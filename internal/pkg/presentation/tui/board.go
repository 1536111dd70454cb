package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

var boardColumns = []string{
	types.TicketStatusToDo,
	types.TicketStatusInProgress,
	types.TicketStatusDone,
}

// boardModel renders the repair ticket kanban. Column membership is pure
// derived state from the ticket snapshot; a move only shows once the
// update event echoes back from the backend.
type boardModel struct {
	tickets *livesync.Collection[types.Ticket]
	column  int
	cursor  int
}

func columns(snapshot []types.Ticket) map[string][]types.Ticket {
	return lo.GroupBy(snapshot, func(t types.Ticket) string { return t.Status })
}

func (m *boardModel) selected() (types.Ticket, bool) {
	if m.tickets == nil {
		return types.Ticket{}, false
	}

	tickets := columns(m.tickets.Snapshot())[boardColumns[m.column]]
	if m.cursor < 0 || m.cursor >= len(tickets) {
		return types.Ticket{}, false
	}
	return tickets[m.cursor], true
}

// moveTarget returns the column one step in the given direction, or the
// current one at the board edges.
func (m *boardModel) moveTarget(dir int) string {
	target := m.column + dir
	if target < 0 || target >= len(boardColumns) {
		return boardColumns[m.column]
	}
	return boardColumns[target]
}

func (m *boardModel) clampCursor() {
	if m.tickets == nil {
		m.cursor = 0
		return
	}

	tickets := columns(m.tickets.Snapshot())[boardColumns[m.column]]
	if m.cursor >= len(tickets) && len(tickets) > 0 {
		m.cursor = len(tickets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *boardModel) view(operator bool) string {
	if m.tickets == nil {
		return mutedStyle.Render("loading...")
	}
	if err := m.tickets.Err(); err != nil {
		return errorStyle.Render("ticket board unavailable: " + err.Error())
	}
	if m.tickets.Loading() {
		return mutedStyle.Render("loading...")
	}

	grouped := columns(m.tickets.Snapshot())

	rendered := make([]string, 0, len(boardColumns))
	for col, status := range boardColumns {
		var b strings.Builder

		header := fmt.Sprintf("%s (%d)", status, len(grouped[status]))
		if col == m.column {
			b.WriteString(titleStyle.Render(header))
		} else {
			b.WriteString(mutedStyle.Render(header))
		}
		b.WriteString("\n")

		for i, ticket := range grouped[status] {
			line := fmt.Sprintf("%s %s", ticket.ID, truncate(ticket.Title, 24))
			if ticket.AssetID != "" {
				line += mutedStyle.Render(" [" + ticket.AssetID + "]")
			}
			if col == m.column && i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}

		rendered = append(rendered, panelStyle.Render(b.String()))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	hints := "h/l column · j/k select"
	if operator {
		hints += " · [ / ] move ticket · n new ticket"
	} else {
		hints += disabledStyle.Render(" · move/create (Permission Denied)")
	}

	return board + "\n" + mutedStyle.Render(hints)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
