// Package network keeps the geographic map in sync: GeoJSON features for
// substations and lines, grouped by health status with a pulse overlay for
// anything degraded.
package network

import (
	"context"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

const networkTable = "network_geo"

//go:generate moq -rm -out networkservice_mock.go . NetworkService
type NetworkService interface {
	// Mount fetches the rendered feature set and subscribes to changes. A
	// failed fetch is terminal for this mount and opens no subscription.
	Mount(ctx context.Context, deliver func(livesync.Event[types.MapFeature])) *livesync.Collection[types.MapFeature]
}

type networkSvc struct {
	rows backend.RowStore
	feed backend.ChangeFeed
}

func New(rows backend.RowStore, feed backend.ChangeFeed) NetworkService {
	return &networkSvc{
		rows: rows,
		feed: feed,
	}
}

func (svc *networkSvc) Mount(ctx context.Context, deliver func(livesync.Event[types.MapFeature])) *livesync.Collection[types.MapFeature] {
	log := logging.GetFromContext(ctx)

	c := livesync.New(func(f types.MapFeature) string { return f.ID })

	err := c.Initialize(ctx, func(ctx context.Context) ([]types.MapFeature, error) {
		rows, err := svc.rows.Select(ctx, networkTable, backend.Query{})
		if err != nil {
			return nil, err
		}
		return backend.DecodeAll[types.MapFeature](rows)
	})
	if err != nil {
		log.Error("network feature fetch failed", "err", err.Error())
		return c
	}

	err = livesync.Bind(ctx, c, svc.feed, networkTable, deliver)
	if err != nil {
		log.Error("network feature subscription failed", "err", err.Error())
	}

	return c
}
