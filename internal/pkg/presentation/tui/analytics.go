package tui

import (
	"fmt"
	"strings"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// renderAnalytics shows the 90 day failure forecast, the high risk asset
// list and the preventive actions. All of it is curated configuration,
// not live data.
func renderAnalytics(cfg *application.Config) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Predictive Analytics"))
	b.WriteString("\n\n")

	b.WriteString("90 day failure forecast\n")
	b.WriteString(sparkline(cfg.Analytics.Forecast))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("High Risk Assets"))
	b.WriteString("\n")
	for _, asset := range cfg.Analytics.HighRiskAssets {
		b.WriteString(fmt.Sprintf("%-10s %s %5.1f%%\n",
			asset.ID,
			severityStyle(asset.Risk).Render(fmt.Sprintf("%-8s", asset.Risk)),
			asset.Probability,
		))
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("Preventive Actions"))
	b.WriteString("\n")
	for _, action := range cfg.Analytics.PreventiveActions {
		b.WriteString("  · " + action + "\n")
	}

	return b.String()
}

func sparkline(series []float64) string {
	if len(series) == 0 {
		return mutedStyle.Render("no forecast configured")
	}

	floor, ceil := series[0], series[0]
	for _, v := range series {
		if v < floor {
			floor = v
		}
		if v > ceil {
			ceil = v
		}
	}

	var b strings.Builder
	for _, v := range series {
		idx := 0
		if ceil > floor {
			idx = int((v - floor) / (ceil - floor) * float64(len(sparks)-1))
		}
		b.WriteRune(sparks[idx])
	}

	return b.String()
}
