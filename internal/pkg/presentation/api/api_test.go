package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/webevents"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/router"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

type staticSessions struct {
	current types.Session
}

func (s *staticSessions) SignIn(ctx context.Context, email, password string) error { return nil }
func (s *staticSessions) SignUp(ctx context.Context, email, password string) error { return nil }
func (s *staticSessions) RequestPasswordReset(ctx context.Context, email string) error {
	return nil
}
func (s *staticSessions) SignOut(ctx context.Context) error                        { return nil }
func (s *staticSessions) ConsumeRedirect(ctx context.Context, rawURL string) error { return nil }
func (s *staticSessions) Current() types.Session                                   { return s.current }
func (s *staticSessions) OnChange(fn func(types.Session))                          {}

func TestHealthEndpointReturnsNoContent(t *testing.T) {
	is := is.New(t)

	we := webevents.New()
	defer we.Shutdown()

	r := RegisterHandlers(context.Background(), router.New("test"), &staticSessions{}, we)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	is.Equal(http.StatusNoContent, w.Result().StatusCode)
}

func TestDebugStateExposesTheCurrentSession(t *testing.T) {
	is := is.New(t)

	we := webevents.New()
	defer we.Shutdown()

	sessions := &staticSessions{current: types.Session{
		Authenticated: true,
		Email:         "operator@ksebl.in",
		Role:          types.RoleOperator,
	}}

	r := RegisterHandlers(context.Background(), router.New("test"), sessions, we)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/state", nil))

	is.Equal(http.StatusOK, w.Result().StatusCode)

	var got state
	err := json.NewDecoder(w.Result().Body).Decode(&got)
	is.NoErr(err)
	is.Equal("operator@ksebl.in", got.Session.Email)
	is.Equal(types.RoleOperator, got.Session.Role)
}
