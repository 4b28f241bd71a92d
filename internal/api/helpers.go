// internal/api/helpers.go
package api

import (
	"fmt"
	"regexp"
	"time"
)

// serviceKeyRegex guards service keys before they reach the runtime.
var serviceKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func isValidServiceKey(key string) bool {
	if key == "" || len(key) > 128 {
		return false
	}
	return serviceKeyRegex.MatchString(key)
}

// formatUptime formats duration into a human-readable string
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
