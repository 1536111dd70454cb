package livesync

import (
	"context"
	"encoding/json"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/infrastructure/backend"
)

// Bind opens a change feed subscription for table and hands typed events to
// deliver. Rows that fail boundary validation are logged and dropped rather
// than propagated untyped. The returned subscription is wired into the
// collection so Teardown releases it.
func Bind[T any](ctx context.Context, c *Collection[T], feed backend.ChangeFeed, table string, deliver func(Event[T])) error {
	log := logging.GetFromContext(ctx)

	sub, err := feed.Subscribe(ctx, table, func(raw backend.RowEvent) {
		ev, ok := convert[T](ctx, c, raw)
		if !ok {
			return
		}
		deliver(ev)
	})
	if err != nil {
		log.Error("failed to subscribe to change feed", "table", table, "err", err.Error())
		return err
	}

	c.SetUnsubscribe(sub.Unsubscribe)
	return nil
}

func convert[T any](ctx context.Context, c *Collection[T], raw backend.RowEvent) (Event[T], bool) {
	log := logging.GetFromContext(ctx)

	switch raw.Type {
	case backend.EventInsert, backend.EventUpdate:
		item, err := backend.Decode[T](raw.New)
		if err != nil {
			log.Error("dropping change event that failed validation", "table", raw.Table, "err", err.Error())
			return Event[T]{}, false
		}

		eventType := Insert
		if raw.Type == backend.EventUpdate {
			eventType = Update
		}

		return Event[T]{Type: eventType, Item: item, Key: c.key(item)}, true

	case backend.EventDelete:
		// deletes only carry the key columns, so skip full validation and
		// pull the id straight out of the old record
		key := deleteKey(raw.Old)
		if key == "" {
			log.Debug("dropping delete event without a usable key", "table", raw.Table)
			return Event[T]{}, false
		}

		return Event[T]{Type: Delete, Key: key}, true
	}

	return Event[T]{}, false
}

// deleteKey digs the id out of an old record, looking both at the top level
// and under properties for tables that store GeoJSON feature rows.
func deleteKey(old json.RawMessage) string {
	if old == nil {
		return ""
	}

	key := struct {
		ID         string `json:"id"`
		Properties struct {
			ID string `json:"id"`
		} `json:"properties"`
	}{}
	_ = json.Unmarshal(old, &key)

	if key.ID != "" {
		return key.ID
	}

	return key.Properties.ID
}
