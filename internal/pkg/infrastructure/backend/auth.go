package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

type AuthEventType string

const (
	AuthSignedIn  AuthEventType = "SIGNED_IN"
	AuthSignedOut AuthEventType = "SIGNED_OUT"
	// AuthEmailConfirmed is a sign-in that was triggered by an email
	// confirmation link, distinguished by the type query parameter on the
	// redirect URL. The session store treats it differently on purpose.
	AuthEmailConfirmed AuthEventType = "EMAIL_CONFIRMED"
)

type AuthEvent struct {
	Type    AuthEventType
	Session AuthSession
}

type AuthSession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthAPI is the boundary to the hosted auth service.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (AuthSession, error)
	SignUp(ctx context.Context, email, password, redirectTo string) error
	Recover(ctx context.Context, email, redirectTo string) error
	SignOut(ctx context.Context) error

	OnStateChange(fn func(AuthEvent))
	ConsumeRedirect(ctx context.Context, rawURL string) error
}

var _ AuthAPI = &Client{}

func (c *Client) OnStateChange(fn func(AuthEvent)) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Client) emit(ev AuthEvent) {
	c.listenerMu.Lock()
	fns := make([]func(AuthEvent), len(c.listeners))
	copy(fns, c.listeners)
	c.listenerMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (AuthSession, error) {
	var err error
	ctx, span := tracer.Start(ctx, "sign-in")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query := url.Values{}
	query.Set("grant_type", "password")

	body := map[string]string{"email": email, "password": password}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token", query, body)
	if err != nil {
		return AuthSession{}, err
	}

	respBody, err := c.do(ctx, req, KindAuth)
	if err != nil {
		return AuthSession{}, err
	}

	session := AuthSession{}
	err = json.Unmarshal(respBody, &session)
	if err != nil {
		err = &Error{Kind: KindAuth, Message: "failed to unmarshal session: " + err.Error()}
		return AuthSession{}, err
	}

	c.setAccessToken(session.AccessToken)
	c.emit(AuthEvent{Type: AuthSignedIn, Session: session})

	return session, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, redirectTo string) error {
	var err error
	ctx, span := tracer.Start(ctx, "sign-up")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}

	body := map[string]string{"email": email, "password": password}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/signup", query, body)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req, KindAuth)
	return err
}

func (c *Client) Recover(ctx context.Context, email, redirectTo string) error {
	var err error
	ctx, span := tracer.Start(ctx, "recover-password")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}

	body := map[string]string{"email": email}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/recover", query, body)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req, KindAuth)
	return err
}

func (c *Client) SignOut(ctx context.Context) error {
	var err error
	ctx, span := tracer.Start(ctx, "sign-out")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, nil)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, req, KindAuth)

	// identity is gone locally no matter what the server said
	c.setAccessToken("")
	c.emit(AuthEvent{Type: AuthSignedOut})

	return err
}

// ConsumeRedirect handles a verification or recovery link that the user
// followed out of band. The token travels in the URL fragment; a
// type=signup parameter marks an email confirmation.
func (c *Client) ConsumeRedirect(ctx context.Context, rawURL string) error {
	log := logging.GetFromContext(ctx)

	u, err := url.Parse(rawURL)
	if err != nil {
		return &Error{Kind: KindAuth, Message: "redirect url is invalid: " + err.Error()}
	}

	params, err := url.ParseQuery(strings.TrimPrefix(u.Fragment, "#"))
	if err != nil || len(params) == 0 {
		params = u.Query()
	}

	token := params.Get("access_token")
	if token == "" {
		return &Error{Kind: KindAuth, Message: "redirect url carries no access token"}
	}

	session := AuthSession{AccessToken: token, TokenType: params.Get("token_type")}
	c.setAccessToken(token)

	if params.Get("type") == "signup" {
		log.Info("consumed email confirmation redirect")
		c.emit(AuthEvent{Type: AuthEmailConfirmed, Session: session})
		return nil
	}

	c.emit(AuthEvent{Type: AuthSignedIn, Session: session})
	return nil
}
