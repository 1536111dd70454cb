package switchgear

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

func newGate(t *testing.T) authz.Gate {
	t.Helper()

	gate, err := authz.NewDefault(context.Background())
	if err != nil {
		t.Fatal(err.Error())
	}
	return gate
}

func rosterRows() []json.RawMessage {
	return []json.RawMessage{
		[]byte(`{"id":"DIS-A01","assetId":"SUB-A","status":"Connected","lastChanged":"2026-08-30T10:00:00Z","operator":"r.nair"}`),
		[]byte(`{"id":"DIS-B01","assetId":"SUB-B","status":"Disconnected","lastChanged":"2026-08-30T11:00:00Z","operator":"r.nair"}`),
	}
}

func TestToggleIssuesExactlyOneUpdateWithTheOppositeState(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			is.Equal(disconnectorsTable, table)
			is.Equal("id", q.OrderBy)
			is.True(!q.Descending)
			return rosterRows(), nil
		},
		UpdateFunc: func(ctx context.Context, table, id string, patch map[string]any) error {
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

	svc := New(rows, feed, newGate(t), func() types.Role { return types.RoleOperator })

	var c *livesync.Collection[types.Disconnector]
	c = svc.Mount(ctx, func(ev livesync.Event[types.Disconnector]) { c.OnEvent(ev) })
	is.NoErr(c.Err())
	is.Equal(2, c.Len())

	target := c.Snapshot()[1]
	is.Equal("DIS-B01", target.ID)

	err := svc.Toggle(ctx, target, "r.nair")
	is.NoErr(err)

	is.Equal(1, len(rows.UpdateCalls()))
	call := rows.UpdateCalls()[0]
	is.Equal("DIS-B01", call.ID)
	is.Equal(types.SwitchStateConnected, call.Patch["status"])
	is.Equal("r.nair", call.Patch["operator"])

	// the local snapshot only changes when the update echoes back
	is.Equal(types.SwitchStateDisconnected, c.Snapshot()[1].Status)

	onRow(backend.RowEvent{
		Type:  backend.EventUpdate,
		Table: disconnectorsTable,
		New:   []byte(`{"id":"DIS-B01","assetId":"SUB-B","status":"Connected","lastChanged":"2026-08-30T12:00:00Z","operator":"r.nair"}`),
	})

	snapshot := c.Snapshot()
	is.Equal(types.SwitchStateConnected, snapshot[1].Status)
	// position preserved, the untouched row untouched
	is.Equal("DIS-A01", snapshot[0].ID)
	is.Equal(types.SwitchStateConnected, snapshot[0].Status)
}

func TestToggleIsDeniedForEveryRoleButOperator(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		UpdateFunc: func(ctx context.Context, table, id string, patch map[string]any) error {
			return nil
		},
	}

	gate := newGate(t)

	for _, role := range []types.Role{types.RoleCustomer, types.RolePending, types.Role("")} {
		svc := New(rows, &backend.ChangeFeedMock{}, gate, func() types.Role { return role })

		err := svc.Toggle(ctx, types.Disconnector{ID: "DIS-A01", Status: types.SwitchStateConnected}, "someone")
		is.True(err == ErrPermissionDenied)
	}

	is.Equal(0, len(rows.UpdateCalls()))
}

func TestWriteFailureLeavesTheSnapshotUntouched(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return rosterRows(), nil
		},
		UpdateFunc: func(ctx context.Context, table, id string, patch map[string]any) error {
			return &backend.Error{Kind: backend.KindWrite, Status: 401, Message: "row level security"}
		},
	}

	feed := &backend.ChangeFeedMock{
		SubscribeFunc: func(ctx context.Context, table string, fn func(backend.RowEvent)) (backend.Subscription, error) {
			return &fakeSubscription{}, nil
		},
	}

	svc := New(rows, feed, newGate(t), func() types.Role { return types.RoleOperator })

	c := svc.Mount(ctx, func(ev livesync.Event[types.Disconnector]) {})
	is.NoErr(c.Err())

	target := c.Snapshot()[0]
	err := svc.Toggle(ctx, target, "r.nair")
	is.True(err != nil)
	is.Equal(backend.KindWrite, backend.KindOf(err))

	// a failed write is operation-fatal only, the panel keeps its state
	is.NoErr(c.Err())
	is.Equal(target.Status, c.Snapshot()[0].Status)
}
