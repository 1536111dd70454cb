package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// Everything that happens off the UI loop (auth callbacks, change feed
// deliveries, write results) is funneled through one channel and re-enters
// the program as a message, so all state mutation stays single threaded.

type sessionMsg types.Session

type alertEventMsg livesync.Event[types.Alert]
type ticketEventMsg livesync.Event[types.Ticket]
type switchEventMsg livesync.Event[types.Disconnector]
type featureEventMsg livesync.Event[types.MapFeature]

// authDoneMsg reports the outcome of a sign-in, sign-up, reset or
// sign-out request.
type authDoneMsg struct {
	op  string
	err error
}

// actionDoneMsg reports the outcome of a gated write (toggle, ticket
// create, ticket move, notify).
type actionDoneMsg struct {
	op  string
	id  string
	err error
}

// mounted messages hand a freshly mounted collection back to the update
// loop; the fetch happened off the loop, the assignment happens on it.
// gen identifies the mount that requested the fetch: a view switch or a
// sign-out in the meantime makes the message stale, and a stale mount is
// torn down instead of installed.
type dashboardMountedMsg struct {
	gen    int
	alerts *livesync.Collection[types.Alert]
}

type boardMountedMsg struct {
	gen     int
	tickets *livesync.Collection[types.Ticket]
}

type controlMountedMsg struct {
	gen      int
	switches *livesync.Collection[types.Disconnector]
}

type netmapMountedMsg struct {
	gen      int
	features *livesync.Collection[types.MapFeature]
}

// toastTickMsg expires the toast generation it was armed for.
type toastTickMsg struct {
	gen int
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
