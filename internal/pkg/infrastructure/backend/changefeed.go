package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gorilla/websocket"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// RowEvent is one change notification from the feed. New is set for inserts
// and updates, Old for updates and deletes (deletes typically carry the key
// columns only).
type RowEvent struct {
	Type  EventType
	Table string
	New   json.RawMessage
	Old   json.RawMessage
}

type Subscription interface {
	// Unsubscribe stops delivery. It is idempotent; no event is delivered
	// after it returns.
	Unsubscribe()
}

//go:generate moq -rm -out changefeed_mock.go . ChangeFeed
type ChangeFeed interface {
	Subscribe(ctx context.Context, table string, fn func(RowEvent)) (Subscription, error)
	Close()
}

const heartbeatInterval = 25 * time.Second

// Feed multiplexes per-table change subscriptions over one websocket
// connection, speaking the phoenix channel protocol the hosted feed uses.
// Events for one table are delivered in arrival order from a single read
// loop; there is no ordering guarantee across tables.
type Feed struct {
	cfg    Config
	tokens interface{ AccessToken() string }

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string]func(RowEvent)
	taps     []func(RowEvent)
	nextRef  int
	closed   bool

	done chan struct{}
}

func NewFeed(cfg Config, tokens interface{ AccessToken() string }) *Feed {
	return &Feed{
		cfg:      cfg,
		tokens:   tokens,
		handlers: map[string]func(RowEvent){},
		done:     make(chan struct{}),
	}
}

type channelMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type changePayload struct {
	Type      EventType       `json:"type"`
	Record    json.RawMessage `json:"record"`
	OldRecord json.RawMessage `json:"old_record"`
}

func (f *Feed) websocketURL() (string, error) {
	u, err := url.Parse(f.cfg.baseURL)
	if err != nil {
		return "", err
	}

	scheme := "wss"
	if u.Scheme == "http" {
		scheme = "ws"
	}

	query := url.Values{}
	query.Set("apikey", f.cfg.anonKey)
	query.Set("vsn", "1.0.0")

	return fmt.Sprintf("%s://%s/realtime/v1/websocket?%s", scheme, u.Host, query.Encode()), nil
}

func (f *Feed) connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn != nil || f.closed {
		return nil
	}

	wsURL, err := f.websocketURL()
	if err != nil {
		return &Error{Kind: KindConfiguration, Message: "change feed url is invalid: " + err.Error()}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return &Error{Kind: KindFetch, Message: "failed to connect to change feed: " + err.Error()}
	}

	f.conn = conn

	go f.readLoop(ctx, conn)
	go f.heartbeat(ctx)

	return nil
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) {
	log := logging.GetFromContext(ctx)

	for {
		var msg channelMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			select {
			case <-f.done:
			default:
				log.Error("change feed read failed", "err", err.Error())
			}
			return
		}

		switch msg.Event {
		case "INSERT", "UPDATE", "DELETE":
			f.dispatch(ctx, msg)
		case "phx_reply", "phx_close", "presence_state":
			// channel bookkeeping, nothing to deliver
		default:
			log.Debug("ignoring unknown feed event", "event", msg.Event)
		}
	}
}

func (f *Feed) dispatch(ctx context.Context, msg channelMessage) {
	log := logging.GetFromContext(ctx)

	f.mu.Lock()
	handler, ok := f.handlers[msg.Topic]
	taps := make([]func(RowEvent), len(f.taps))
	copy(taps, f.taps)
	f.mu.Unlock()

	if !ok && len(taps) == 0 {
		return
	}

	payload := changePayload{}
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Error("failed to unmarshal change payload", "topic", msg.Topic, "err", err.Error())
		return
	}

	ev := RowEvent{
		Type:  EventType(msg.Event),
		Table: tableFromTopic(msg.Topic),
		New:   payload.Record,
		Old:   payload.OldRecord,
	}

	for _, tap := range taps {
		tap(ev)
	}

	if ok {
		handler(ev)
	}
}

// Tap registers an observer that sees every change event on the feed,
// regardless of table subscriptions. Used by the diagnostics endpoint to
// rebroadcast feed traffic; taps cannot be removed.
func (f *Feed) Tap(fn func(RowEvent)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taps = append(f.taps, fn)
}

func tableFromTopic(topic string) string {
	parts := strings.Split(topic, ":")
	return parts[len(parts)-1]
}

func (f *Feed) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.send(channelMessage{Topic: "phoenix", Event: "heartbeat", Payload: json.RawMessage(`{}`)})
		}
	}
}

func (f *Feed) send(msg channelMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn == nil {
		return &Error{Kind: KindFetch, Message: "change feed is not connected"}
	}

	f.nextRef++
	msg.Ref = strconv.Itoa(f.nextRef)

	return f.conn.WriteJSON(msg)
}

type subscription struct {
	feed  *Feed
	topic string
	once  sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		delete(s.feed.handlers, s.topic)
		s.feed.mu.Unlock()

		_ = s.feed.send(channelMessage{Topic: s.topic, Event: "phx_leave", Payload: json.RawMessage(`{}`)})
	})
}

func (f *Feed) Subscribe(ctx context.Context, table string, fn func(RowEvent)) (Subscription, error) {
	err := f.connect(ctx)
	if err != nil {
		return nil, err
	}

	topic := "realtime:public:" + table

	f.mu.Lock()
	if _, exists := f.handlers[topic]; exists {
		f.mu.Unlock()
		return nil, &Error{Kind: KindFetch, Message: fmt.Sprintf("already subscribed to %s", table)}
	}
	f.handlers[topic] = fn
	f.mu.Unlock()

	join := map[string]any{"user_token": f.tokens.AccessToken()}
	payload, _ := json.Marshal(join)

	err = f.send(channelMessage{Topic: topic, Event: "phx_join", Payload: payload})
	if err != nil {
		f.mu.Lock()
		delete(f.handlers, topic)
		f.mu.Unlock()
		return nil, err
	}

	return &subscription{feed: f, topic: topic}, nil
}

func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	close(f.done)

	if f.conn != nil {
		_ = f.conn.Close()
		f.conn = nil
	}
}
