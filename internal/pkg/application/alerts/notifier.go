package alerts

import (
	"context"
	"fmt"
	"io"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	yaml "gopkg.in/yaml.v2"

	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

const gridAlertEventType = "gridops.alert"

// Notifier pushes high severity alerts to the field team endpoints that
// subscribe to them. Delivery is best effort; the dashboard never blocks
// on it.
type Notifier interface {
	NotifyFieldTeam(ctx context.Context, alert types.Alert) error
}

type notifier struct {
	subscribers map[string][]SubscriberConfig
}

func NewNotifier(cfg *NotifierConfig) Notifier {
	n := &notifier{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			n.subscribers[s.Type] = s.Subscribers
		}
	}

	return n
}

func (n *notifier) NotifyFieldTeam(ctx context.Context, alert types.Alert) error {
	if s, ok := n.subscribers[gridAlertEventType]; !ok || len(s) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", alert.ID, alert.Timestamp.Unix()))
	event.SetTime(alert.Timestamp)
	event.SetSource("github.com/Naresh-M-tech/keralalt-line")
	event.SetType(gridAlertEventType)

	eventData := struct {
		AlertID   string `json:"alertID"`
		AssetType string `json:"assetType"`
		Severity  string `json:"severity"`
		Timestamp string `json:"timestamp"`
	}{
		AlertID:   alert.ID,
		AssetType: alert.AssetType,
		Severity:  alert.Severity,
		Timestamp: alert.Timestamp.Format(time.RFC3339Nano),
	}

	err = event.SetData(cloudevents.ApplicationJSON, eventData)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	for _, s := range n.subscribers[gridAlertEventType] {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) {
			log.Error("failed to send alert notification", "endpoint", s.Endpoint, "err", result.Error())
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type NotifierConfig struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadNotifierConfiguration(data io.Reader) (*NotifierConfig, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := NotifierConfig{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
