// Package localdate converts instants to caller-local calendar days.
//
// Search clients send the day they are interested in ("2024-03-09") plus
// their UTC offset in seconds. The server never knows the caller's zone
// name, only the offset, so matching is done against a fixed-offset day.
package localdate

import (
	"time"
)

// Layout is the wire format for days.
const Layout = "2006-01-02"

// Day returns t's calendar day in a zone offsetSeconds east of UTC,
// formatted as Layout.
func Day(t time.Time, offsetSeconds int) string {
	zone := time.FixedZone("", offsetSeconds)
	return t.In(zone).Format(Layout)
}

// Matches reports whether t falls on day (Layout format) in a zone
// offsetSeconds east of UTC. An unparseable day never matches.
func Matches(t time.Time, day string, offsetSeconds int) bool {
	if _, err := time.Parse(Layout, day); err != nil {
		return false
	}
	return Day(t, offsetSeconds) == day
}
