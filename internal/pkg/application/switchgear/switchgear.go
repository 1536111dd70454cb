// Package switchgear drives the disconnector control panel: live switch
// state and the operator-only toggle action.
package switchgear

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/authz"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

const disconnectorsTable = "disconnectors"

var ErrPermissionDenied = errors.New("permission denied")

type RoleSource func() types.Role

//go:generate moq -rm -out switchservice_mock.go . SwitchService
type SwitchService interface {
	// Mount fetches the switch roster and subscribes to changes. A failed
	// fetch is terminal for this mount and opens no subscription.
	Mount(ctx context.Context, deliver func(livesync.Event[types.Disconnector])) *livesync.Collection[types.Disconnector]

	// Toggle requests the opposite state for one disconnector with a
	// single patch. The row is never mutated locally; the new state lands
	// as an update event when the write is accepted.
	Toggle(ctx context.Context, d types.Disconnector, operator string) error
}

type switchSvc struct {
	rows backend.RowStore
	feed backend.ChangeFeed
	gate authz.Gate
	role RoleSource
}

func New(rows backend.RowStore, feed backend.ChangeFeed, gate authz.Gate, role RoleSource) SwitchService {
	return &switchSvc{
		rows: rows,
		feed: feed,
		gate: gate,
		role: role,
	}
}

func (svc *switchSvc) Mount(ctx context.Context, deliver func(livesync.Event[types.Disconnector])) *livesync.Collection[types.Disconnector] {
	log := logging.GetFromContext(ctx)

	c := livesync.New(func(d types.Disconnector) string { return d.ID })

	err := c.Initialize(ctx, func(ctx context.Context) ([]types.Disconnector, error) {
		rows, err := svc.rows.Select(ctx, disconnectorsTable, backend.Query{
			OrderBy: "id",
		})
		if err != nil {
			return nil, err
		}
		return backend.DecodeAll[types.Disconnector](rows)
	})
	if err != nil {
		log.Error("disconnector roster fetch failed", "err", err.Error())
		return c
	}

	err = livesync.Bind(ctx, c, svc.feed, disconnectorsTable, deliver)
	if err != nil {
		log.Error("disconnector subscription failed", "err", err.Error())
	}

	return c
}

func (svc *switchSvc) Toggle(ctx context.Context, d types.Disconnector, operator string) error {
	if !svc.gate.Permitted(ctx, svc.role(), authz.ActionToggleDisconnector) {
		return ErrPermissionDenied
	}

	target := types.SwitchStateConnected
	if d.Status == types.SwitchStateConnected {
		target = types.SwitchStateDisconnected
	}

	err := svc.rows.Update(ctx, disconnectorsTable, d.ID, map[string]any{
		"status":      target,
		"lastChanged": time.Now().UTC().Format(time.RFC3339),
		"operator":    operator,
	})
	if err != nil {
		return fmt.Errorf("failed to toggle disconnector %s: %w", d.ID, err)
	}

	return nil
}
