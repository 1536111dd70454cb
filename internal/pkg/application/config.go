package application

import (
	"io"

	yaml "gopkg.in/yaml.v2"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/alerts"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// Config is the yaml application configuration: the static dashboard
// content (KPIs, zone health, analytics) and the field-team notification
// subscribers. Live rows always come from the backend, never from here.
type Config struct {
	Dashboard     DashboardConfig       `yaml:"dashboard"`
	Analytics     AnalyticsConfig       `yaml:"analytics"`
	Notifications []alerts.Notification `yaml:"notifications"`
}

type DashboardConfig struct {
	KPIs  types.KPI          `yaml:"kpis"`
	Zones []types.ZoneHealth `yaml:"zones"`
}

type AnalyticsConfig struct {
	// Forecast holds the 90 day failure probability series, oldest first.
	Forecast          []float64         `yaml:"forecast"`
	HighRiskAssets    []types.RiskAsset `yaml:"highRiskAssets"`
	PreventiveActions []string          `yaml:"preventiveActions"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NotifierConfig narrows the application config to what the alert
// notifier consumes.
func (c *Config) NotifierConfig() *alerts.NotifierConfig {
	return &alerts.NotifierConfig{Notifications: c.Notifications}
}
