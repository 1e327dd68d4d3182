// Package tzoffset formats UTC offsets expressed in seconds.
package tzoffset

import (
	"fmt"
	"time"
)

// Absent is rendered when no offset is known.
const Absent = "-"

// Label renders an offset as GMT±HH:MM, e.g. -14400 → "GMT-04:00".
func Label(offset *int) string {
	if offset == nil {
		return Absent
	}
	sign := '+'
	secs := *offset
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("GMT%c%02d:%02d", sign, secs/3600, (secs%3600)/60)
}

// NowAt returns now as seen on a wall clock at the given offset.
func NowAt(offset *int, now time.Time) (time.Time, bool) {
	if offset == nil {
		return time.Time{}, false
	}
	return now.In(time.FixedZone(Label(offset), *offset)), true
}
