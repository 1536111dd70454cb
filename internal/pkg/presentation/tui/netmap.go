package tui

import (
	"fmt"
	"strings"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/livesync"
	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/network"
	"github.com/Naresh-M-tech/keralalt-line/pkg/types"
)

// netmapModel renders the geographic network view as status layers. The
// layer set is rebuilt from the snapshot on mount and folded forward by
// the same events that feed the collection.
type netmapModel struct {
	features *livesync.Collection[types.MapFeature]
	layers   *network.LayerSet
	cursor   int
}

var layerOrder = []string{
	types.FeatureStatusCritical,
	types.FeatureStatusWarning,
	types.FeatureStatusHealthy,
}

func (m *netmapModel) selected() (types.MapFeature, bool) {
	flat := m.flatten()
	if m.cursor < 0 || m.cursor >= len(flat) {
		return types.MapFeature{}, false
	}
	return flat[m.cursor], true
}

func (m *netmapModel) flatten() []types.MapFeature {
	if m.layers == nil {
		return nil
	}

	var flat []types.MapFeature
	for _, status := range layerOrder {
		flat = append(flat, m.layers.Group(status)...)
	}
	return flat
}

func (m *netmapModel) clampCursor() {
	if n := len(m.flatten()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *netmapModel) view(operator bool) string {
	if m.features == nil {
		return mutedStyle.Render("loading...")
	}
	if err := m.features.Err(); err != nil {
		return errorStyle.Render("network map unavailable: " + err.Error())
	}
	if m.features.Loading() {
		return mutedStyle.Render("loading...")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Network Map"))
	b.WriteString("\n\n")

	i := 0
	for _, status := range layerOrder {
		group := m.layers.Group(status)
		if len(group) == 0 {
			continue
		}

		b.WriteString(severityStyle(status).Render(status))
		b.WriteString("\n")

		for _, f := range group {
			marker := " "
			if m.layers.Pulsing(f.ID) {
				marker = severityStyle(status).Render("●")
			}

			line := fmt.Sprintf("%s %-10s %-12s %s", marker, f.ID, f.Type, describeGeometry(f.Geometry))
			if i == m.cursor {
				line = selectedStyle.Render("> ") + line
			} else {
				line = "  " + line
			}

			b.WriteString(line)
			b.WriteString("\n")
			i++
		}

		b.WriteString("\n")
	}

	if operator {
		b.WriteString(mutedStyle.Render("j/k select · t ticket from asset"))
	} else {
		b.WriteString(disabledStyle.Render("t ticket from asset (Permission Denied)"))
	}

	return b.String()
}

func describeGeometry(g types.Geometry) string {
	switch g.Type {
	case "Point":
		if len(g.Point) == 2 {
			return fmt.Sprintf("(%.4f, %.4f)", g.Point[1], g.Point[0])
		}
	case "LineString":
		if len(g.LineString) > 1 {
			return fmt.Sprintf("%d segment line", len(g.LineString)-1)
		}
	}
	return ""
}
