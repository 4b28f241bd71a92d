// internal/logs/tail.go
package logs

import (
	"errors"
	"strconv"
	"strings"
)

// TailBounds clamps requested tail sizes for one deployment variant.
type TailBounds struct {
	Min     int
	Max     int
	Default int
}

var (
	// GeneralTail applies to the multi-service database deployment.
	GeneralTail = TailBounds{Min: 1, Max: 2000, Default: 200}
	// NodeTail applies to the node deployment.
	NodeTail = TailBounds{Min: 10, Max: 500, Default: 200}
)

// Clamp parses a raw tail value. Missing or non-numeric input falls back to
// Default; numeric input is clamped into [Min, Max]. It never fails.
func (b TailBounds) Clamp(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return b.Default
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Out-of-range integers are still numeric; clamp them by sign.
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(raw, "-") {
				return b.Min
			}
			return b.Max
		}
		return b.Default
	}
	return max(b.Min, min(n, b.Max))
}
