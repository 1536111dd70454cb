// Package alerts feeds the live alert ticker on the dashboard: the twenty
// most recent alerts, newest first, kept current by the change feed.
package alerts

import (
	"context"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

const (
	alertsTable = "alerts"
	feedDepth   = 20
)

//go:generate moq -rm -out alertservice_mock.go . AlertService
type AlertService interface {
	// Mount fetches the initial feed and subscribes to changes. The
	// returned collection is owned by the caller until Teardown. If the
	// fetch fails the error is recorded on the collection, no subscription
	// is opened and there is no retry for this mount.
	Mount(ctx context.Context, deliver func(livesync.Event[types.Alert])) *livesync.Collection[types.Alert]
}

type alertSvc struct {
	rows backend.RowStore
	feed backend.ChangeFeed
}

func New(rows backend.RowStore, feed backend.ChangeFeed) AlertService {
	return &alertSvc{
		rows: rows,
		feed: feed,
	}
}

func (svc *alertSvc) Mount(ctx context.Context, deliver func(livesync.Event[types.Alert])) *livesync.Collection[types.Alert] {
	log := logging.GetFromContext(ctx)

	c := livesync.New(
		func(a types.Alert) string { return a.ID },
		livesync.WithMode[types.Alert](livesync.Prepend),
		livesync.WithCap[types.Alert](feedDepth),
	)

	err := c.Initialize(ctx, func(ctx context.Context) ([]types.Alert, error) {
		rows, err := svc.rows.Select(ctx, alertsTable, backend.Query{
			OrderBy:    "timestamp",
			Descending: true,
			Limit:      feedDepth,
		})
		if err != nil {
			return nil, err
		}
		return backend.DecodeAll[types.Alert](rows)
	})
	if err != nil {
		log.Error("alert feed fetch failed", "err", err.Error())
		return c
	}

	err = livesync.Bind(ctx, c, svc.feed, alertsTable, deliver)
	if err != nil {
		log.Error("alert feed subscription failed", "err", err.Error())
	}

	return c
}
