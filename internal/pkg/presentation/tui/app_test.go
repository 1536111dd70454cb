package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/authz"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/tickets"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type fakeSessionStore struct {
	current types.Session
}

func (f *fakeSessionStore) SignIn(ctx context.Context, email, password string) error { return nil }
func (f *fakeSessionStore) SignUp(ctx context.Context, email, password string) error { return nil }
func (f *fakeSessionStore) RequestPasswordReset(ctx context.Context, email string) error {
	return nil
}
func (f *fakeSessionStore) SignOut(ctx context.Context) error                        { return nil }
func (f *fakeSessionStore) ConsumeRedirect(ctx context.Context, rawURL string) error { return nil }
func (f *fakeSessionStore) Current() types.Session                                   { return f.current }
func (f *fakeSessionStore) OnChange(fn func(types.Session))                          {}

func newTestApp(t *testing.T, role types.Role, ticketSvc tickets.TicketService) *App {
	t.Helper()

	gate, err := authz.NewDefault(context.Background())
	if err != nil {
		t.Fatal(err.Error())
	}

	a := NewApp(context.Background(), &application.App{
		Session: &fakeSessionStore{},
		Tickets: ticketSvc,
		Gate:    gate,
		Config:  &application.Config{},
	})
	a.session = types.Session{Authenticated: true, UserID: "user-1", Email: "u@ksebl.in", Role: role}

	return a
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMovingToDonePromptsBeforeWriting(t *testing.T) {
	is := is.New(t)

	ticketSvc := &tickets.TicketServiceMock{
		MoveFunc: func(ctx context.Context, ticket types.Ticket, target string, confirm func(types.Ticket) bool) error {
			is.True(confirm != nil)
			is.True(confirm(ticket))
			return nil
		},
	}

	a := newTestApp(t, types.RoleOperator, ticketSvc)
	a.view = ViewTickets
	a.board = boardModel{
		tickets: seededBoard(t, types.Ticket{ID: "TKT-7", Title: "Replace insulator", Status: types.TicketStatusInProgress}),
		column:  1,
	}

	// request the move; nothing is written until the prompt is answered
	_, cmd := a.Update(key("]"))
	is.True(cmd == nil)
	is.True(a.confirm != nil)
	is.Equal("TKT-7", a.confirm.ticket.ID)
	is.Equal(0, len(ticketSvc.MoveCalls()))

	// accept
	_, cmd = a.Update(key("y"))
	is.True(a.confirm == nil)
	is.True(cmd != nil)

	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	is.True(ok)
	is.NoErr(done.err)
	is.Equal(1, len(ticketSvc.MoveCalls()))
	is.Equal(types.TicketStatusDone, ticketSvc.MoveCalls()[0].Target)
}

func TestDecliningTheDonePromptWritesNothing(t *testing.T) {
	is := is.New(t)

	ticketSvc := &tickets.TicketServiceMock{
		MoveFunc: func(ctx context.Context, ticket types.Ticket, target string, confirm func(types.Ticket) bool) error {
			return nil
		},
	}

	a := newTestApp(t, types.RoleOperator, ticketSvc)
	a.view = ViewTickets
	a.board = boardModel{
		tickets: seededBoard(t, types.Ticket{ID: "TKT-7", Title: "Replace insulator", Status: types.TicketStatusInProgress}),
		column:  1,
	}

	a.Update(key("]"))
	is.True(a.confirm != nil)

	a.Update(key("n"))
	is.True(a.confirm == nil)
	is.Equal(0, len(ticketSvc.MoveCalls()))
}

func TestCustomersCannotMoveTickets(t *testing.T) {
	is := is.New(t)

	ticketSvc := &tickets.TicketServiceMock{
		MoveFunc: func(ctx context.Context, ticket types.Ticket, target string, confirm func(types.Ticket) bool) error {
			return nil
		},
	}

	a := newTestApp(t, types.RoleCustomer, ticketSvc)
	a.view = ViewTickets
	a.board = boardModel{
		tickets: seededBoard(t, types.Ticket{ID: "TKT-7", Title: "Replace insulator", Status: types.TicketStatusToDo}),
	}

	_, cmd := a.Update(key("]"))
	is.True(cmd == nil)
	is.True(a.confirm == nil)
	is.Equal(0, len(ticketSvc.MoveCalls()))
}

func TestMoveWithinTheSameColumnIsANoOpAtTheEdge(t *testing.T) {
	is := is.New(t)

	ticketSvc := &tickets.TicketServiceMock{
		MoveFunc: func(ctx context.Context, ticket types.Ticket, target string, confirm func(types.Ticket) bool) error {
			return nil
		},
	}

	a := newTestApp(t, types.RoleOperator, ticketSvc)
	a.view = ViewTickets
	a.board = boardModel{
		tickets: seededBoard(t, types.Ticket{ID: "TKT-7", Title: "x", Status: types.TicketStatusToDo}),
	}

	// already in the leftmost column, "[" has nowhere to go
	_, cmd := a.Update(key("["))
	is.True(cmd == nil)
	is.Equal(0, len(ticketSvc.MoveCalls()))
}

func TestMountForTheActiveViewIsInstalled(t *testing.T) {
	is := is.New(t)

	a := newTestApp(t, types.RoleOperator, &tickets.TicketServiceMock{})
	a.view = ViewDashboard

	c := livesync.New(func(al types.Alert) string { return al.ID })
	a.Update(dashboardMountedMsg{gen: a.mountGen, alerts: c})

	is.True(a.dashboard.alerts == c)
}

func TestLateMountAfterAViewSwitchIsTornDown(t *testing.T) {
	is := is.New(t)

	a := newTestApp(t, types.RoleOperator, &tickets.TicketServiceMock{})
	a.view = ViewTickets
	a.mountGen = 3

	// the fetch for a dashboard visit two switches ago lands now
	c := livesync.New(func(al types.Alert) string { return al.ID })
	released := false
	c.SetUnsubscribe(func() { released = true })

	a.Update(dashboardMountedMsg{gen: 2, alerts: c})

	is.True(released)
	is.True(a.dashboard.alerts == nil)
}

func TestLateMountAfterSignOutIsTornDown(t *testing.T) {
	is := is.New(t)

	a := newTestApp(t, types.RoleOperator, &tickets.TicketServiceMock{})
	a.view = ViewTickets
	gen := a.mountGen

	a.handleSession(types.Session{})
	is.True(!a.session.Authenticated)

	c := livesync.New(func(tk types.Ticket) string { return tk.ID })
	released := false
	c.SetUnsubscribe(func() { released = true })

	a.Update(boardMountedMsg{gen: gen, tickets: c})

	is.True(released)
	is.True(a.board.tickets == nil)
}
