package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type fakeSubscription struct {
	released int
}

func (f *fakeSubscription) Unsubscribe() {
	f.released++
}

func alertRow(id, severity string, ts time.Time) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"id":%q,"type":"Transformer","severity":%q,"timestamp":%q}`,
		id, severity, ts.Format(time.RFC3339),
	))
}

func TestMountServesNewestFirstAndCapsTheFeed(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			is.Equal(alertsTable, table)
			is.Equal("timestamp", q.OrderBy)
			is.True(q.Descending)
			is.Equal(feedDepth, q.Limit)

			result := make([]json.RawMessage, 0, feedDepth)
			for i := 0; i < feedDepth; i++ {
				result = append(result, alertRow(fmt.Sprintf("ALM-%03d", i), types.SeverityMedium, now.Add(-time.Duration(i)*time.Minute)))
			}
			return result, nil
		},
	}

	var onRow func(backend.RowEvent)
	feed := &backend.ChangeFeedMock{
		SubscribeFunc: func(ctx context.Context, table string, fn func(backend.RowEvent)) (backend.Subscription, error) {
			onRow = fn
			return &fakeSubscription{}, nil
		},
	}

	svc := New(rows, feed)

	var c *livesync.Collection[types.Alert]
	c = svc.Mount(ctx, func(ev livesync.Event[types.Alert]) { c.OnEvent(ev) })
	is.NoErr(c.Err())
	is.Equal(feedDepth, c.Len())

	// a fresh alert arrives over the feed and must displace the oldest one
	onRow(backend.RowEvent{
		Type:  backend.EventInsert,
		Table: alertsTable,
		New:   alertRow("ALM-NEW", types.SeverityCritical, now.Add(time.Minute)),
	})

	snapshot := c.Snapshot()
	is.Equal(feedDepth, len(snapshot))
	is.Equal("ALM-NEW", snapshot[0].ID)
	is.Equal("ALM-018", snapshot[len(snapshot)-1].ID)
}

func TestMountDoesNotSubscribeWhenTheFetchFails(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return nil, &backend.Error{Kind: backend.KindFetch, Status: 500, Message: "boom"}
		},
	}

	feed := &backend.ChangeFeedMock{
		SubscribeFunc: func(ctx context.Context, table string, fn func(backend.RowEvent)) (backend.Subscription, error) {
			return &fakeSubscription{}, nil
		},
	}

	svc := New(rows, feed)

	c := svc.Mount(ctx, func(ev livesync.Event[types.Alert]) {})
	is.True(c.Err() != nil)
	is.Equal(backend.KindFetch, backend.KindOf(c.Err()))
	is.Equal(0, len(feed.SubscribeCalls()))
}

func TestNotifierConfigurationParsesSubscribers(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadNotifierConfiguration(bytes.NewBufferString(`
notifications:
  - id: field-team
    name: field team dispatch
    type: gridops.alert
    subscribers:
      - endpoint: http://dispatch.internal/alerts
`))
	is.NoErr(err)
	is.Equal(1, len(cfg.Notifications))
	is.Equal("gridops.alert", cfg.Notifications[0].Type)
	is.Equal("http://dispatch.internal/alerts", cfg.Notifications[0].Subscribers[0].Endpoint)
}

func TestNotifierWithoutSubscribersIsANoOp(t *testing.T) {
	is := is.New(t)

	n := NewNotifier(nil)
	err := n.NotifyFieldTeam(context.Background(), types.Alert{ID: "ALM-001", Severity: types.SeverityCritical, Timestamp: time.Now()})
	is.NoErr(err)
}
