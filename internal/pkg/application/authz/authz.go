// Package authz is the role gate: it decides whether a role may perform a
// mutating action. The decision is advisory to the UI (controls render
// disabled) and enforced by never issuing the write; the authoritative
// enforcement is the row-level policy on the backend.
package authz

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/open-policy-agent/opa/rego"

	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type Action string

const (
	ActionToggleDisconnector Action = "toggle-disconnector"
	ActionCreateTicket       Action = "create-ticket"
	ActionMoveTicket         Action = "move-ticket"
	ActionTicketFromMapAsset Action = "create-ticket-from-map-feature"
)

//go:embed authz.rego
var defaultPolicy []byte

type Gate interface {
	Permitted(ctx context.Context, role types.Role, action Action) bool
}

type gate struct {
	query rego.PreparedEvalQuery
}

func New(ctx context.Context, policies io.Reader) (Gate, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policy: %w", err)
	}

	query, err := rego.New(
		rego.Query("x = data.gridops.authz.allow"),
		rego.Module("authz.rego", string(module)),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare authz query: %w", err)
	}

	return &gate{query: query}, nil
}

// NewDefault builds a gate from the embedded policy, for deployments that
// do not override it with a policy file.
func NewDefault(ctx context.Context) (Gate, error) {
	return New(ctx, bytes.NewReader(defaultPolicy))
}

// Permitted denies on any evaluation failure.
func (g *gate) Permitted(ctx context.Context, role types.Role, action Action) bool {
	log := logging.GetFromContext(ctx)

	input := map[string]any{
		"role":   string(role),
		"action": string(action),
	}

	results, err := g.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		log.Error("authz eval failed", "err", err.Error())
		return false
	}

	if len(results) == 0 {
		return false
	}

	allowed, ok := results[0].Bindings["x"].(bool)
	return ok && allowed
}
