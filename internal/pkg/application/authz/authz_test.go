package authz

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

var allActions = []Action{
	ActionToggleDisconnector,
	ActionCreateTicket,
	ActionMoveTicket,
	ActionTicketFromMapAsset,
}

func TestOperatorIsPermittedAllActions(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	gate, err := NewDefault(ctx)
	is.NoErr(err)

	for _, action := range allActions {
		is.True(gate.Permitted(ctx, types.RoleOperator, action))
	}
}

func TestEveryOtherRoleIsDenied(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	gate, err := NewDefault(ctx)
	is.NoErr(err)

	for _, role := range []types.Role{types.RoleCustomer, types.RolePending, types.Role(""), types.Role("admin")} {
		for _, action := range allActions {
			is.True(!gate.Permitted(ctx, role, action))
		}
	}
}

func TestUnknownActionIsDeniedEvenForOperators(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	gate, err := NewDefault(ctx)
	is.NoErr(err)

	is.True(!gate.Permitted(ctx, types.RoleOperator, Action("drop-table")))
}
