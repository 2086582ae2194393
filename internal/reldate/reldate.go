// Package reldate formats a timestamp as a short label relative to "now".
package reldate

import (
	"fmt"
	"time"
)

// Format returns a human-readable label describing how modified relates to
// now, e.g. "today", "3 days ago", "2 weeks from now".
//
// The day difference is the signed whole-day count, truncated toward zero,
// positive when modified is in the future. Rules are evaluated in order and
// the first match wins; later ranges deliberately overlap earlier ones.
// Note the future side has no singular-week case: positive counts 2 through
// 7 fall through to "N days from now". That gap is intentional and kept for
// compatibility with the established labels.
func Format(modified, now time.Time) string {
	days := int(modified.Sub(now) / (24 * time.Hour))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 7:
		return fmt.Sprintf("%d weeks from now", days/7)
	case -14 < days && days < -7:
		return fmt.Sprintf("%d week ago", -days/7)
	case days < -7:
		return fmt.Sprintf("%d weeks ago", -days/7)
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("%d days from now", days)
	}
}
