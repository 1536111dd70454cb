package tui

import "strings"

// View identifies one of the dashboard's top level screens. The router is
// pure selection state; mounting and unmounting of the live collections
// happens in the root model when the selection changes.
type View int

const (
	ViewDashboard View = iota
	ViewTickets
	ViewAnalytics
	ViewControl
	ViewMap
)

var viewNames = map[View]string{
	ViewDashboard: "Dashboard",
	ViewTickets:   "Repairs & Tickets",
	ViewAnalytics: "Predictive Analytics",
	ViewControl:   "Control Center",
	ViewMap:       "Network Map",
}

func (v View) String() string {
	return viewNames[v]
}

func renderSidebar(active View) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("KSEBL Grid Intelligence"))
	b.WriteString("\n\n")

	for v := ViewDashboard; v <= ViewMap; v++ {
		line := viewNames[v]
		if v == active {
			b.WriteString(sidebarActiveStyle.Render("> " + line))
		} else {
			b.WriteString(sidebarStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
