// Package tickets implements the repair ticket workflow behind the kanban
// board: live board state plus the operator-only create and move rules.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/authz"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

const ticketsTable = "tickets"

var ErrPermissionDenied = errors.New("permission denied")

// RoleSource reports the role of the signed-in identity at call time. The
// role can change mid-session when the async profile lookup lands.
type RoleSource func() types.Role

//go:generate moq -rm -out ticketservice_mock.go . TicketService
type TicketService interface {
	// Mount fetches the board and subscribes to changes. A failed fetch is
	// terminal for this mount and opens no subscription.
	Mount(ctx context.Context, deliver func(livesync.Event[types.Ticket])) *livesync.Collection[types.Ticket]

	// Create inserts a new ticket in the To Do column. The board is never
	// mutated locally; the ticket appears when the insert event echoes
	// back over the feed.
	Create(ctx context.Context, title, assetID, assignedTo string) error
	CreateFromAlert(ctx context.Context, alert types.Alert) error
	CreateFromMapFeature(ctx context.Context, feature types.MapFeature) error

	// Move requests a column change. Moving to the current column writes
	// nothing. Moving to Done asks confirm first; a declined confirmation
	// writes nothing and is not an error.
	Move(ctx context.Context, ticket types.Ticket, target string, confirm func(types.Ticket) bool) error
}

type ticketSvc struct {
	rows backend.RowStore
	feed backend.ChangeFeed
	gate authz.Gate
	role RoleSource
}

func New(rows backend.RowStore, feed backend.ChangeFeed, gate authz.Gate, role RoleSource) TicketService {
	return &ticketSvc{
		rows: rows,
		feed: feed,
		gate: gate,
		role: role,
	}
}

func (svc *ticketSvc) Mount(ctx context.Context, deliver func(livesync.Event[types.Ticket])) *livesync.Collection[types.Ticket] {
	log := logging.GetFromContext(ctx)

	c := livesync.New(func(t types.Ticket) string { return t.ID })

	err := c.Initialize(ctx, func(ctx context.Context) ([]types.Ticket, error) {
		rows, err := svc.rows.Select(ctx, ticketsTable, backend.Query{
			OrderBy:    "created",
			Descending: true,
		})
		if err != nil {
			return nil, err
		}
		return backend.DecodeAll[types.Ticket](rows)
	})
	if err != nil {
		log.Error("ticket board fetch failed", "err", err.Error())
		return c
	}

	err = livesync.Bind(ctx, c, svc.feed, ticketsTable, deliver)
	if err != nil {
		log.Error("ticket board subscription failed", "err", err.Error())
	}

	return c
}

func (svc *ticketSvc) Create(ctx context.Context, title, assetID, assignedTo string) error {
	return svc.create(ctx, authz.ActionCreateTicket, title, assetID, assignedTo)
}

func (svc *ticketSvc) CreateFromAlert(ctx context.Context, alert types.Alert) error {
	title := fmt.Sprintf("Investigate %s alert on %s", strings.ToLower(alert.Severity), alert.AssetType)
	return svc.create(ctx, authz.ActionCreateTicket, title, alert.ID, "")
}

func (svc *ticketSvc) CreateFromMapFeature(ctx context.Context, feature types.MapFeature) error {
	title := fmt.Sprintf("Inspect %s %s", feature.Type, feature.ID)
	return svc.create(ctx, authz.ActionTicketFromMapAsset, title, feature.ID, "")
}

func (svc *ticketSvc) create(ctx context.Context, action authz.Action, title, assetID, assignedTo string) error {
	if !svc.gate.Permitted(ctx, svc.role(), action) {
		return ErrPermissionDenied
	}

	ticket := types.Ticket{
		ID:         newTicketID(),
		Title:      title,
		AssetID:    assetID,
		AssignedTo: assignedTo,
		Created:    time.Now().UTC(),
		Status:     types.TicketStatusToDo,
	}

	err := svc.rows.Insert(ctx, ticketsTable, ticket)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (svc *ticketSvc) Move(ctx context.Context, ticket types.Ticket, target string, confirm func(types.Ticket) bool) error {
	if ticket.Status == target {
		return nil
	}

	if !svc.gate.Permitted(ctx, svc.role(), authz.ActionMoveTicket) {
		return ErrPermissionDenied
	}

	if target == types.TicketStatusDone && confirm != nil && !confirm(ticket) {
		return nil
	}

	err := svc.rows.Update(ctx, ticketsTable, ticket.ID, map[string]any{"status": target})
	if err != nil {
		return fmt.Errorf("failed to move ticket %s: %w", ticket.ID, err)
	}

	return nil
}

func newTicketID() string {
	return "TKT-" + strings.ToUpper(uuid.NewString()[:8])
}
