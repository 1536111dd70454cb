package tickets

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/authz"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type fakeSubscription struct{}

func (f *fakeSubscription) Unsubscribe() {}

func operatorRole() types.Role { return types.RoleOperator }
func customerRole() types.Role { return types.RoleCustomer }

func newGate(t *testing.T) authz.Gate {
	t.Helper()

	gate, err := authz.NewDefault(context.Background())
	if err != nil {
		t.Fatal(err.Error())
	}
	return gate
}

func emptyBoard() *backend.RowStoreMock {
	return &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return []json.RawMessage{}, nil
		},
		InsertFunc: func(ctx context.Context, table string, row any) error {
			return nil
		},
		UpdateFunc: func(ctx context.Context, table, id string, patch map[string]any) error {
			return nil
		},
	}
}

func TestMoveToTheSameColumnWritesNothing(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := emptyBoard()
	svc := New(rows, &backend.ChangeFeedMock{}, newGate(t), operatorRole)

	ticket := types.Ticket{ID: "TKT-0001", Title: "Replace fuse", Status: types.TicketStatusInProgress}

	err := svc.Move(ctx, ticket, types.TicketStatusInProgress, func(types.Ticket) bool { return true })
	is.NoErr(err)
	is.Equal(0, len(rows.UpdateCalls()))
}

func TestMoveToDoneIsGatedOnConfirmation(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := emptyBoard()
	svc := New(rows, &backend.ChangeFeedMock{}, newGate(t), operatorRole)

	ticket := types.Ticket{ID: "TKT-0001", Title: "Replace fuse", Status: types.TicketStatusInProgress}

	// declined: no write, not an error
	err := svc.Move(ctx, ticket, types.TicketStatusDone, func(types.Ticket) bool { return false })
	is.NoErr(err)
	is.Equal(0, len(rows.UpdateCalls()))

	// accepted: exactly one status patch
	var confirmed types.Ticket
	err = svc.Move(ctx, ticket, types.TicketStatusDone, func(tk types.Ticket) bool {
		confirmed = tk
		return true
	})
	is.NoErr(err)
	is.Equal(1, len(rows.UpdateCalls()))
	is.Equal("TKT-0001", rows.UpdateCalls()[0].ID)
	is.Equal(types.TicketStatusDone, rows.UpdateCalls()[0].Patch["status"])
	is.Equal("Replace fuse", confirmed.Title)
}

func TestCustomersMayNeitherCreateNorMove(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := emptyBoard()
	svc := New(rows, &backend.ChangeFeedMock{}, newGate(t), customerRole)

	err := svc.Create(ctx, "Unauthorized ticket", "TR-0001", "")
	is.True(err == ErrPermissionDenied)

	err = svc.Move(ctx, types.Ticket{ID: "TKT-0001", Status: types.TicketStatusToDo}, types.TicketStatusDone, nil)
	is.True(err == ErrPermissionDenied)

	is.Equal(0, len(rows.InsertCalls()))
	is.Equal(0, len(rows.UpdateCalls()))
}

func TestTicketFromAlertEchoesIntoToDoExactlyOnce(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	var inserted types.Ticket

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			is.Equal(ticketsTable, table)
			is.Equal("created", q.OrderBy)
			is.True(q.Descending)
			return []json.RawMessage{}, nil
		},
		InsertFunc: func(ctx context.Context, table string, row any) error {
			inserted = row.(types.Ticket)
			return nil
		},
	}

	var onRow func(backend.RowEvent)
	feed := &backend.ChangeFeedMock{
		SubscribeFunc: func(ctx context.Context, table string, fn func(backend.RowEvent)) (backend.Subscription, error) {
			onRow = fn
			return &fakeSubscription{}, nil
		},
	}

	svc := New(rows, feed, newGate(t), operatorRole)

	var board *livesync.Collection[types.Ticket]
	board = svc.Mount(ctx, func(ev livesync.Event[types.Ticket]) { board.OnEvent(ev) })
	is.NoErr(board.Err())

	alert := types.Alert{ID: "TR-0095", AssetType: "Transformer", Severity: types.SeverityCritical}
	err := svc.CreateFromAlert(ctx, alert)
	is.NoErr(err)

	is.Equal("TR-0095", inserted.AssetID)
	is.Equal(types.TicketStatusToDo, inserted.Status)
	is.True(inserted.ID != "")

	// nothing appears on the board until the write echoes back
	is.Equal(0, board.Len())

	echoed, err := json.Marshal(inserted)
	is.NoErr(err)

	onRow(backend.RowEvent{Type: backend.EventInsert, Table: ticketsTable, New: echoed})

	snapshot := board.Snapshot()
	is.Equal(1, len(snapshot))
	is.Equal(inserted.ID, snapshot[0].ID)
	is.Equal(types.TicketStatusToDo, snapshot[0].Status)
}

func TestGeneratedTicketIDsCarryThePrefix(t *testing.T) {
	is := is.New(t)

	id := newTicketID()
	is.Equal("TKT-", id[:4])
	is.Equal(12, len(id))
}
