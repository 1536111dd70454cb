package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type fakeAuth struct {
	fns          []func(backend.AuthEvent)
	signOutCalls int
}

func (f *fakeAuth) emit(ev backend.AuthEvent) {
	for _, fn := range f.fns {
		fn(ev)
	}
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (backend.AuthSession, error) {
	s := backend.AuthSession{AccessToken: "token", User: backend.User{ID: "user-1", Email: email}}
	f.emit(backend.AuthEvent{Type: backend.AuthSignedIn, Session: s})
	return s, nil
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password, redirectTo string) error {
	return nil
}

func (f *fakeAuth) Recover(ctx context.Context, email, redirectTo string) error {
	return nil
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.signOutCalls++
	f.emit(backend.AuthEvent{Type: backend.AuthSignedOut})
	return nil
}

func (f *fakeAuth) OnStateChange(fn func(backend.AuthEvent)) {
	f.fns = append(f.fns, fn)
}

func (f *fakeAuth) ConsumeRedirect(ctx context.Context, rawURL string) error {
	f.emit(backend.AuthEvent{Type: backend.AuthEmailConfirmed, Session: backend.AuthSession{AccessToken: "token"}})
	return nil
}

func awaitRole(t *testing.T, changes <-chan types.Session) types.Session {
	t.Helper()

	for {
		select {
		case s := <-changes:
			if s.Role != types.RolePending {
				return s
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for role resolution")
		}
	}
}

func TestProfileLessUserDegradesToCustomer(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return []json.RawMessage{}, nil
		},
	}

	s := New(ctx, &fakeAuth{}, rows, "")

	changes := make(chan types.Session, 8)
	s.OnChange(func(sess types.Session) { changes <- sess })

	err := s.SignIn(ctx, "customer@example.in", "secret")
	is.NoErr(err)

	resolved := awaitRole(t, changes)
	is.Equal(types.RoleCustomer, resolved.Role)
	is.Equal("", resolved.ConfigWarning)
	is.True(resolved.Authenticated)
}

func TestOperatorProfileResolvesOperatorRole(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			is.Equal("profiles", table)
			is.Equal("user-1", q.Filter["id"])
			return []json.RawMessage{[]byte(`{"id":"user-1","email":"operator@ksebl.in","role":"operator","designation":"Grid Operator"}`)}, nil
		},
	}

	s := New(ctx, &fakeAuth{}, rows, "")

	changes := make(chan types.Session, 8)
	s.OnChange(func(sess types.Session) { changes <- sess })

	err := s.SignIn(ctx, "operator@ksebl.in", "secret")
	is.NoErr(err)

	resolved := awaitRole(t, changes)
	is.Equal(types.RoleOperator, resolved.Role)
	is.Equal("Grid Operator", resolved.Designation)
}

func TestMissingProfilesTableWarnsAndDegrades(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return nil, &backend.Error{Kind: backend.KindConfiguration, Status: 404, Message: "relation does not exist"}
		},
	}

	s := New(ctx, &fakeAuth{}, rows, "")

	changes := make(chan types.Session, 8)
	s.OnChange(func(sess types.Session) { changes <- sess })

	err := s.SignIn(ctx, "anyone@example.in", "secret")
	is.NoErr(err)

	resolved := awaitRole(t, changes)
	is.Equal(types.RoleCustomer, resolved.Role)
	is.True(resolved.ConfigWarning != "")
}

func TestEmailConfirmationForcesSignOut(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	auth := &fakeAuth{}
	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return []json.RawMessage{}, nil
		},
	}

	s := New(ctx, auth, rows, "")

	err := s.ConsumeRedirect(ctx, "https://dashboard.example#access_token=abc&type=signup")
	is.NoErr(err)

	is.Equal(1, auth.signOutCalls)

	current := s.Current()
	is.True(!current.Authenticated)
	is.True(current.JustVerified)

	// the flag is one-shot, the next sign-in attempt clears it
	err = s.SignIn(ctx, "fresh@example.in", "secret")
	is.NoErr(err)
	is.True(!s.Current().JustVerified)
}

func TestSignOutClearsIdentitySynchronously(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	rows := &backend.RowStoreMock{
		SelectFunc: func(ctx context.Context, table string, q backend.Query) ([]json.RawMessage, error) {
			return []json.RawMessage{}, nil
		},
	}

	s := New(ctx, &fakeAuth{}, rows, "")

	err := s.SignIn(ctx, "operator@ksebl.in", "secret")
	is.NoErr(err)
	is.True(s.Current().Authenticated)

	err = s.SignOut(ctx)
	is.NoErr(err)

	current := s.Current()
	is.True(!current.Authenticated)
	is.Equal("", current.UserID)
	is.Equal(types.Role(""), current.Role)
}
