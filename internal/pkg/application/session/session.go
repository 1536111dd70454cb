// Package session holds the authentication state for the whole application
// run: identity, derived role and the listeners that re-render on change.
package session

import (
	"context"
	"sync"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

const profilesTable = "profiles"

//go:generate moq -rm -out store_mock.go . Store
type Store interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	RequestPasswordReset(ctx context.Context, email string) error
	SignOut(ctx context.Context) error

	// ConsumeRedirect feeds a verification link the user followed out of
	// band into the auth state machine.
	ConsumeRedirect(ctx context.Context, rawURL string) error

	Current() types.Session
	OnChange(fn func(types.Session))
}

type store struct {
	auth       backend.AuthAPI
	rows       backend.RowStore
	redirectTo string

	mu      sync.Mutex
	current types.Session
	fns     []func(types.Session)
}

func New(ctx context.Context, auth backend.AuthAPI, rows backend.RowStore, redirectTo string) Store {
	s := &store{
		auth:       auth,
		rows:       rows,
		redirectTo: redirectTo,
	}

	auth.OnStateChange(func(ev backend.AuthEvent) {
		s.handleAuthEvent(ctx, ev)
	})

	return s
}

func (s *store) Current() types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *store) OnChange(fn func(types.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

func (s *store) notify() {
	s.mu.Lock()
	current := s.current
	fns := make([]func(types.Session), len(s.fns))
	copy(fns, s.fns)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
}

func (s *store) SignIn(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.current.JustVerified = false
	s.mu.Unlock()

	_, err := s.auth.SignIn(ctx, email, password)
	return err
}

func (s *store) SignUp(ctx context.Context, email, password string) error {
	return s.auth.SignUp(ctx, email, password, s.redirectTo)
}

func (s *store) RequestPasswordReset(ctx context.Context, email string) error {
	return s.auth.Recover(ctx, email, s.redirectTo)
}

func (s *store) SignOut(ctx context.Context) error {
	return s.auth.SignOut(ctx)
}

func (s *store) ConsumeRedirect(ctx context.Context, rawURL string) error {
	return s.auth.ConsumeRedirect(ctx, rawURL)
}

func (s *store) handleAuthEvent(ctx context.Context, ev backend.AuthEvent) {
	log := logging.GetFromContext(ctx)

	switch ev.Type {
	case backend.AuthSignedIn:
		s.mu.Lock()
		s.current = types.Session{
			Authenticated: true,
			UserID:        ev.Session.User.ID,
			Email:         ev.Session.User.Email,
			Role:          types.RolePending,
		}
		s.mu.Unlock()
		s.notify()

		// the role may resolve after the first render; until then every
		// mutating action is denied
		go s.resolveRole(ctx, ev.Session.User.ID)

	case backend.AuthEmailConfirmed:
		// a confirmation link must not grant access by itself; force the
		// session back out and let the login view show a one-time message
		log.Info("email confirmed, forcing sign out")

		s.mu.Lock()
		s.current = types.Session{JustVerified: true}
		s.mu.Unlock()

		err := s.auth.SignOut(ctx)
		if err != nil {
			log.Error("forced sign out after email confirmation failed", "err", err.Error())
		}

	case backend.AuthSignedOut:
		s.mu.Lock()
		justVerified := s.current.JustVerified
		s.current = types.Session{JustVerified: justVerified}
		s.mu.Unlock()
		s.notify()
	}
}

// resolveRole looks up the profile for id and derives the role. A missing
// profiles table degrades to the least privileged role with a configuration
// warning; a missing row degrades silently (logged for operators).
func (s *store) resolveRole(ctx context.Context, id string) {
	log := logging.GetFromContext(ctx)

	role := types.RoleCustomer
	warning := ""
	designation := ""

	rows, err := s.rows.Select(ctx, profilesTable, backend.Query{
		Filter: map[string]string{"id": id},
		Limit:  1,
	})

	switch {
	case err != nil && backend.KindOf(err) == backend.KindConfiguration:
		warning = "profile lookup is not configured, continuing with reduced functionality"
		log.Error("profiles table is missing or misconfigured", "err", err.Error())
	case err != nil:
		log.Error("profile lookup failed", "err", err.Error())
	case len(rows) == 0:
		log.Info("no profile found, defaulting to customer role", "user_id", id)
	default:
		profile, decodeErr := backend.Decode[types.Profile](rows[0])
		if decodeErr != nil {
			log.Error("profile failed validation", "err", decodeErr.Error())
		} else {
			role = types.RoleFromString(profile.Role)
			designation = profile.Designation
		}
	}

	s.mu.Lock()
	// the session may have changed hands while the lookup was in flight
	if !s.current.Authenticated || s.current.UserID != id {
		s.mu.Unlock()
		return
	}
	s.current.Role = role
	s.current.Designation = designation
	s.current.ConfigWarning = warning
	s.mu.Unlock()

	s.notify()
}
