package catalogview

import "strings"

// DefaultStatusColor is the badge color of statuses without a dedicated one.
const DefaultStatusColor = "#6b7280"

var statusColors = map[string]string{
	"operational":        "#10b981",
	"under development":  "#00d9ff",
	"under construction": "#ffd000",
	"decommissioned":     "#6b7280",
	"pre-construction":   "#8b5cf6",
}

// StatusColor returns the badge color for an operational status. Unknown
// statuses get DefaultStatusColor.
func StatusColor(status string) string {
	if c, ok := statusColors[strings.ToLower(status)]; ok {
		return c
	}
	return DefaultStatusColor
}

// KnownStatus reports whether status has a dedicated style.
func KnownStatus(status string) bool {
	_, ok := statusColors[strings.ToLower(status)]
	return ok
}
