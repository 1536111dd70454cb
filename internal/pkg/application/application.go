// Package application assembles the grid operations services on top of the
// hosted backend boundary: one session store, one service per monitored
// table, the role gate and the field-team notifier.
package application

import (
	"context"
	"fmt"
	"io"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/alerts"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/authz"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/network"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/session"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/switchgear"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/tickets"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// App bundles everything the presentation layer needs.
type App struct {
	Session  session.Store
	Alerts   alerts.AlertService
	Tickets  tickets.TicketService
	Switches switchgear.SwitchService
	Network  network.NetworkService
	Notifier alerts.Notifier
	Gate     authz.Gate
	Config   *Config
}

// New wires the services against one backend client. The role source for
// every gate check is the live session, so a role change picked up by the
// async profile lookup takes effect on the next action. A nil policies
// reader selects the embedded authorization policy.
func New(ctx context.Context, client *backend.Client, feed backend.ChangeFeed, cfg *Config, policies io.Reader, redirectTo string) (*App, error) {
	var gate authz.Gate
	var err error

	if policies != nil {
		gate, err = authz.New(ctx, policies)
	} else {
		gate, err = authz.NewDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to prepare role gate: %w", err)
	}

	sessionStore := session.New(ctx, client, client, redirectTo)
	role := func() types.Role { return sessionStore.Current().Role }

	return &App{
		Session:  sessionStore,
		Alerts:   alerts.New(client, feed),
		Tickets:  tickets.New(client, feed, gate, role),
		Switches: switchgear.New(client, feed, gate, role),
		Network:  network.New(client, feed),
		Notifier: alerts.NewNotifier(cfg.NotifierConfig()),
		Gate:     gate,
		Config:   cfg,
	}, nil
}
