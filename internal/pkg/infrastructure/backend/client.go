package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("keralalt-line/backend")

type Config struct {
	baseURL string
	anonKey string
}

func NewConfig(baseURL, anonKey string) Config {
	return Config{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		anonKey: anonKey,
	}
}

func (c Config) Validate() error {
	if c.baseURL == "" {
		return &Error{Kind: KindConfiguration, Message: "backend url is not set"}
	}
	if c.anonKey == "" {
		return &Error{Kind: KindConfiguration, Message: "backend api key is not set"}
	}
	if _, err := url.Parse(c.baseURL); err != nil {
		return &Error{Kind: KindConfiguration, Message: fmt.Sprintf("backend url is invalid: %s", err.Error())}
	}
	return nil
}

// Client talks to the hosted backend over HTTP. It covers the auth service
// (auth.go) and the row store (rows.go). The change feed lives on a separate
// websocket connection, see Feed.
type Client struct {
	cfg        Config
	httpClient http.Client

	mu          sync.RWMutex
	accessToken string

	listenerMu sync.Mutex
	listeners  []func(AuthEvent)
}

func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		cfg: cfg,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *Client) setAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// AccessToken returns the current bearer token, or the anonymous key when
// nobody is signed in.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken == "" {
		return c.cfg.anonKey
	}
	return c.accessToken
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.cfg.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("apikey", c.cfg.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.AccessToken())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, req *http.Request, kind Kind) ([]byte, error) {
	log := logging.GetFromContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: kind, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: kind, Message: fmt.Sprintf("failed to read response body: %s", err.Error())}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := errorFromResponse(kind, resp.StatusCode, respBody)
		log.Debug("backend request failed", "method", req.Method, "url", req.URL.Path, "status", resp.StatusCode, "err", apiErr.Error())
		return nil, apiErr
	}

	return respBody, nil
}
