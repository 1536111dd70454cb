// Package tui is the terminal front end of the grid operations dashboard.
// One bubbletea program owns all view state; everything asynchronous
// re-enters the update loop as a message.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/authz"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/network"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// confirmState is the blocking yes/no prompt shown before a ticket is
// moved to Done.
type confirmState struct {
	ticket types.Ticket
	target string
}

type App struct {
	ctx context.Context
	app *application.App

	events chan tea.Msg

	session types.Session
	login   loginModel

	view      View
	mountGen  int
	dashboard dashboardModel
	board     boardModel
	control   controlModel
	netmap    netmapModel

	confirm     *confirmState
	ticketInput *textinput.Model

	toast toastModel

	width  int
	height int
}

func NewApp(ctx context.Context, app *application.App) *App {
	a := &App{
		ctx:     ctx,
		app:     app,
		events:  make(chan tea.Msg, 256),
		login:   newLoginModel(),
		control: newControlModel(),
	}

	app.Session.OnChange(func(s types.Session) {
		a.events <- sessionMsg(s)
	})

	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(waitForEvent(a.events), textinput.Blink)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case sessionMsg:
		return a.handleSession(types.Session(msg))

	case dashboardMountedMsg:
		if a.mountIsStale(msg.gen) {
			teardown(msg.alerts)
			return a, nil
		}
		a.dashboard = dashboardModel{alerts: msg.alerts}
		return a, nil

	case boardMountedMsg:
		if a.mountIsStale(msg.gen) {
			teardown(msg.tickets)
			return a, nil
		}
		a.board = boardModel{tickets: msg.tickets}
		return a, nil

	case controlMountedMsg:
		if a.mountIsStale(msg.gen) {
			teardown(msg.switches)
			return a, nil
		}
		a.control = newControlModel()
		a.control.switches = msg.switches
		return a, nil

	case netmapMountedMsg:
		if a.mountIsStale(msg.gen) {
			teardown(msg.features)
			return a, nil
		}
		a.netmap = netmapModel{
			features: msg.features,
			layers:   network.NewLayerSet(msg.features.Snapshot()),
		}
		return a, nil

	case alertEventMsg:
		if a.dashboard.alerts == nil {
			return a, waitForEvent(a.events)
		}

		ev := livesync.Event[types.Alert](msg)
		a.dashboard.alerts.OnEvent(ev)
		a.dashboard.clampCursor()

		var bell tea.Cmd
		if ev.Type == livesync.Insert && (ev.Item.Severity == types.SeverityCritical || ev.Item.Severity == types.SeverityHigh) {
			bell = tea.Printf("\a")
		}
		return a, tea.Batch(waitForEvent(a.events), bell)

	case ticketEventMsg:
		if a.board.tickets != nil {
			a.board.tickets.OnEvent(livesync.Event[types.Ticket](msg))
			a.board.clampCursor()
		}
		return a, waitForEvent(a.events)

	case switchEventMsg:
		if a.control.switches != nil {
			ev := livesync.Event[types.Disconnector](msg)
			a.control.switches.OnEvent(ev)
			a.control.clampCursor()
			// an echoed update settles the toggle for that row
			delete(a.control.busy, ev.Key)
		}
		return a, waitForEvent(a.events)

	case featureEventMsg:
		if a.netmap.features != nil {
			ev := livesync.Event[types.MapFeature](msg)
			a.netmap.features.OnEvent(ev)
			a.netmap.layers.Apply(ev)
			a.netmap.clampCursor()
		}
		return a, waitForEvent(a.events)

	case authDoneMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.update(a.ctx, a.app.Session, msg)
		return a, cmd

	case actionDoneMsg:
		return a.handleActionDone(msg)

	case toastTickMsg:
		a.toast.Expire(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if !a.session.Authenticated {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(a.ctx, a.app.Session, msg)
		return a, cmd
	}

	if a.ticketInput != nil {
		input, cmd := a.ticketInput.Update(msg)
		a.ticketInput = &input
		return a, cmd
	}

	return a, nil
}

func (a *App) handleSession(s types.Session) (tea.Model, tea.Cmd) {
	wasAuthenticated := a.session.Authenticated
	a.session = s
	a.login.justVerified = s.JustVerified

	if s.Authenticated && !wasAuthenticated {
		a.view = ViewDashboard
		return a, tea.Batch(waitForEvent(a.events), a.mountView(ViewDashboard))
	}

	if !s.Authenticated && wasAuthenticated {
		a.mountGen++
		a.teardownAll()
		a.dashboard = dashboardModel{}
		a.board = boardModel{}
		a.control = newControlModel()
		a.netmap = netmapModel{}
		a.confirm = nil
		a.ticketInput = nil
		a.login = newLoginModel()
		a.login.justVerified = s.JustVerified
	}

	return a, waitForEvent(a.events)
}

func (a *App) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.op == "toggle" {
		delete(a.control.busy, msg.id)
	}

	if msg.err != nil {
		return a, a.toast.Show("Operation failed: " + msg.err.Error())
	}

	switch msg.op {
	case "toggle":
		// keep quiet on success, the echoed update tells the story
		return a, nil
	case "create-ticket":
		return a, a.toast.Show("Repair ticket created")
	case "move-ticket":
		return a, a.toast.Show("Ticket moved")
	case "notify":
		return a, a.toast.Show("Field team notified")
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.teardownAll()
		return a, tea.Quit
	}

	if !a.session.Authenticated {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(a.ctx, a.app.Session, msg)
		return a, cmd
	}

	if a.confirm != nil {
		return a.handleConfirmKey(msg)
	}

	if a.ticketInput != nil {
		return a.handleTicketInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+q":
		return a, func() tea.Msg {
			return authDoneMsg{op: "signout", err: a.app.Session.SignOut(a.ctx)}
		}

	case "1", "2", "3", "4", "5":
		target := View(int(msg.String()[0] - '1'))
		return a, a.switchView(target)
	}

	switch a.view {
	case ViewDashboard:
		return a.handleDashboardKey(msg)
	case ViewTickets:
		return a.handleBoardKey(msg)
	case ViewControl:
		return a.handleControlKey(msg)
	case ViewMap:
		return a.handleMapKey(msg)
	}

	return a, nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := a.confirm

	switch msg.String() {
	case "y", "Y":
		a.confirm = nil
		ticket, target := confirm.ticket, confirm.target
		return a, func() tea.Msg {
			err := a.app.Tickets.Move(a.ctx, ticket, target, func(types.Ticket) bool { return true })
			return actionDoneMsg{op: "move-ticket", id: ticket.ID, err: err}
		}

	case "n", "N", "esc":
		a.confirm = nil
	}

	return a, nil
}

func (a *App) handleTicketInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := a.ticketInput.Value()
		a.ticketInput = nil

		if title == "" {
			return a, nil
		}
		return a, func() tea.Msg {
			return actionDoneMsg{op: "create-ticket", err: a.app.Tickets.Create(a.ctx, title, "", "")}
		}

	case "esc":
		a.ticketInput = nil
		return a, nil
	}

	input, cmd := a.ticketInput.Update(msg)
	a.ticketInput = &input
	return a, cmd
}

func (a *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.dashboard.cursor++
		a.dashboard.clampCursor()

	case "k", "up":
		a.dashboard.cursor--
		a.dashboard.clampCursor()

	case "t":
		alert, ok := a.dashboard.selected()
		if !ok || !a.permitted(authz.ActionCreateTicket) {
			return a, nil
		}
		return a, func() tea.Msg {
			return actionDoneMsg{op: "create-ticket", err: a.app.Tickets.CreateFromAlert(a.ctx, alert)}
		}

	case "n":
		alert, ok := a.dashboard.selected()
		if !ok || a.session.Role != types.RoleOperator {
			return a, nil
		}
		return a, func() tea.Msg {
			return actionDoneMsg{op: "notify", id: alert.ID, err: a.app.Notifier.NotifyFieldTeam(a.ctx, alert)}
		}
	}

	return a, nil
}

func (a *App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if a.board.column > 0 {
			a.board.column--
			a.board.clampCursor()
		}

	case "l", "right":
		if a.board.column < len(boardColumns)-1 {
			a.board.column++
			a.board.clampCursor()
		}

	case "j", "down":
		a.board.cursor++
		a.board.clampCursor()

	case "k", "up":
		a.board.cursor--
		a.board.clampCursor()

	case "[", "]":
		return a.moveSelectedTicket(msg.String())

	case "n":
		if !a.permitted(authz.ActionCreateTicket) {
			return a, nil
		}
		input := textinput.New()
		input.Placeholder = "ticket title"
		input.CharLimit = 80
		input.Focus()
		a.ticketInput = &input
	}

	return a, nil
}

func (a *App) moveSelectedTicket(key string) (tea.Model, tea.Cmd) {
	if !a.permitted(authz.ActionMoveTicket) {
		return a, nil
	}

	ticket, ok := a.board.selected()
	if !ok {
		return a, nil
	}

	dir := 1
	if key == "[" {
		dir = -1
	}

	target := a.board.moveTarget(dir)
	if target == ticket.Status {
		return a, nil
	}

	// Done is final enough to warrant a second look
	if target == types.TicketStatusDone {
		a.confirm = &confirmState{ticket: ticket, target: target}
		return a, nil
	}

	return a, func() tea.Msg {
		err := a.app.Tickets.Move(a.ctx, ticket, target, nil)
		return actionDoneMsg{op: "move-ticket", id: ticket.ID, err: err}
	}
}

func (a *App) handleControlKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.control.cursor++
		a.control.clampCursor()

	case "k", "up":
		a.control.cursor--
		a.control.clampCursor()

	case "enter", " ":
		d, ok := a.control.selected()
		if !ok || a.control.busy[d.ID] || !a.permitted(authz.ActionToggleDisconnector) {
			return a, nil
		}

		a.control.busy[d.ID] = true
		operator := a.session.Email

		return a, func() tea.Msg {
			return actionDoneMsg{op: "toggle", id: d.ID, err: a.app.Switches.Toggle(a.ctx, d, operator)}
		}
	}

	return a, nil
}

func (a *App) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		a.netmap.cursor++
		a.netmap.clampCursor()

	case "k", "up":
		a.netmap.cursor--
		a.netmap.clampCursor()

	case "t":
		feature, ok := a.netmap.selected()
		if !ok || !a.permitted(authz.ActionTicketFromMapAsset) {
			return a, nil
		}
		return a, func() tea.Msg {
			return actionDoneMsg{op: "create-ticket", err: a.app.Tickets.CreateFromMapFeature(a.ctx, feature)}
		}
	}

	return a, nil
}

func (a *App) permitted(action authz.Action) bool {
	return a.app.Gate.Permitted(a.ctx, a.session.Role, action)
}

// switchView tears the current view's collection down and mounts the new
// one, so a revisit always starts with a fresh fetch. Bumping the mount
// generation invalidates any mount still fetching for the old view.
func (a *App) switchView(target View) tea.Cmd {
	if target == a.view {
		return nil
	}

	a.mountGen++
	a.teardownView(a.view)
	a.view = target
	return a.mountView(target)
}

// mountIsStale reports whether a mount result belongs to a view the user
// has already left, or to a session that has ended.
func (a *App) mountIsStale(gen int) bool {
	return gen != a.mountGen || !a.session.Authenticated
}

// teardown releases a collection that arrived too late to be installed,
// so its feed subscription does not leak.
func teardown[T any](c *livesync.Collection[T]) {
	if c != nil {
		c.Teardown()
	}
}

func (a *App) mountView(v View) tea.Cmd {
	gen := a.mountGen

	switch v {
	case ViewDashboard:
		return func() tea.Msg {
			return dashboardMountedMsg{
				gen: gen,
				alerts: a.app.Alerts.Mount(a.ctx, func(ev livesync.Event[types.Alert]) {
					a.events <- alertEventMsg(ev)
				}),
			}
		}

	case ViewTickets:
		return func() tea.Msg {
			return boardMountedMsg{
				gen: gen,
				tickets: a.app.Tickets.Mount(a.ctx, func(ev livesync.Event[types.Ticket]) {
					a.events <- ticketEventMsg(ev)
				}),
			}
		}

	case ViewControl:
		return func() tea.Msg {
			return controlMountedMsg{
				gen: gen,
				switches: a.app.Switches.Mount(a.ctx, func(ev livesync.Event[types.Disconnector]) {
					a.events <- switchEventMsg(ev)
				}),
			}
		}

	case ViewMap:
		return func() tea.Msg {
			return netmapMountedMsg{
				gen: gen,
				features: a.app.Network.Mount(a.ctx, func(ev livesync.Event[types.MapFeature]) {
					a.events <- featureEventMsg(ev)
				}),
			}
		}
	}

	return nil
}

func (a *App) teardownView(v View) {
	switch v {
	case ViewDashboard:
		if a.dashboard.alerts != nil {
			a.dashboard.alerts.Teardown()
		}
	case ViewTickets:
		if a.board.tickets != nil {
			a.board.tickets.Teardown()
		}
	case ViewControl:
		if a.control.switches != nil {
			a.control.switches.Teardown()
		}
	case ViewMap:
		if a.netmap.features != nil {
			a.netmap.features.Teardown()
		}
	}
}

func (a *App) teardownAll() {
	for v := ViewDashboard; v <= ViewMap; v++ {
		a.teardownView(v)
	}
}

func (a *App) View() string {
	if !a.session.Authenticated {
		view := a.login.view()
		if toast := a.toast.View(); toast != "" {
			view += "\n\n" + toast
		}
		return view
	}

	var header string
	who := a.session.Email
	if a.session.Designation != "" {
		who += " · " + a.session.Designation
	}
	header = mutedStyle.Render(who + " · ctrl+q sign out · 1-5 views")

	if a.session.ConfigWarning != "" {
		header += "\n" + warningStyle.Render(a.session.ConfigWarning)
	}

	var panel string
	switch a.view {
	case ViewDashboard:
		panel = a.dashboard.view(a.app.Config, a.session.Role == types.RoleOperator)
	case ViewTickets:
		panel = a.board.view(a.session.Role == types.RoleOperator)
	case ViewAnalytics:
		panel = renderAnalytics(a.app.Config)
	case ViewControl:
		panel = a.control.view(a.session.Role == types.RoleOperator)
	case ViewMap:
		panel = a.netmap.view(a.session.Role == types.RoleOperator)
	}

	if a.confirm != nil {
		panel += "\n\n" + panelStyle.Render(
			"Move "+a.confirm.ticket.ID+" \""+a.confirm.ticket.Title+"\" to Done?  (y/n)",
		)
	}

	if a.ticketInput != nil {
		panel += "\n\n" + panelStyle.Render("New ticket: "+a.ticketInput.View())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderSidebar(a.view),
		"  ",
		panel,
	)

	out := header + "\n\n" + body
	if toast := a.toast.View(); toast != "" {
		out += "\n\n" + toast
	}

	return out
}
