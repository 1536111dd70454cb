package tui

import (
	"fmt"
	"strings"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// dashboardModel renders the KPI strip, the zone health bars and the live
// alert feed. The feed holds the twenty newest alerts, newest on top.
type dashboardModel struct {
	alerts *livesync.Collection[types.Alert]
	cursor int
}

func (m *dashboardModel) selected() (types.Alert, bool) {
	if m.alerts == nil {
		return types.Alert{}, false
	}

	snapshot := m.alerts.Snapshot()
	if m.cursor < 0 || m.cursor >= len(snapshot) {
		return types.Alert{}, false
	}
	return snapshot[m.cursor], true
}

func (m *dashboardModel) clampCursor() {
	if m.alerts == nil {
		m.cursor = 0
		return
	}
	if n := m.alerts.Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *dashboardModel) view(cfg *application.Config, operator bool) string {
	var b strings.Builder

	kpis := cfg.Dashboard.KPIs
	b.WriteString(panelStyle.Render(fmt.Sprintf(
		"Assets %d   Active Faults %s   Transformers %d   Grid Health %.1f%%",
		kpis.TotalAssets,
		criticalStyle.Render(fmt.Sprintf("%d", kpis.ActiveFaults)),
		kpis.Transformers,
		kpis.GridHealth,
	)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Zone Network Health"))
	b.WriteString("\n")
	for _, zone := range cfg.Dashboard.Zones {
		b.WriteString(fmt.Sprintf("%-8s %s %5.1f%%\n", zone.Name, healthBar(zone.Health), zone.Health))
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Live Alerts"))
	b.WriteString("\n")

	switch {
	case m.alerts == nil:
		b.WriteString(mutedStyle.Render("loading..."))
	case m.alerts.Err() != nil:
		b.WriteString(errorStyle.Render("alert feed unavailable: " + m.alerts.Err().Error()))
	case m.alerts.Loading():
		b.WriteString(mutedStyle.Render("loading..."))
	case m.alerts.Len() == 0:
		b.WriteString(mutedStyle.Render("no alerts"))
	default:
		for i, alert := range m.alerts.Snapshot() {
			line := fmt.Sprintf("%-8s %-14s %s",
				severityStyle(alert.Severity).Render(alert.Severity),
				alert.AssetType,
				alert.Timestamp.Format("15:04:05"),
			)
			if i == m.cursor {
				line = selectedStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if operator {
		b.WriteString(mutedStyle.Render("j/k select · t ticket from alert · n notify field team"))
	} else {
		b.WriteString(disabledStyle.Render("t ticket from alert (Permission Denied) · n notify (Permission Denied)"))
	}

	return b.String()
}

func healthBar(pct float64) string {
	const width = 20

	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case pct < 50:
		return criticalStyle.Render(bar)
	case pct < 80:
		return warningStyle.Render(bar)
	default:
		return healthyStyle.Render(bar)
	}
}
